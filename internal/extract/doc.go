// Package extract turns KCBS search payloads into pipe-delimited event rows.
//
// The extract package locates the event list inside the loosely-typed JSON
// payload (the endpoint has returned GeoJSON FeatureCollections, bare lists,
// and a few envelope variants) and pulls six fields out of the HTML fragment
// embedded in each record. Each field is extracted by an ordered list of
// pattern attempts with explicit fallbacks; a record is only dropped when no
// name can be derived at all.
package extract
