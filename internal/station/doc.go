// Package station holds the station domain model and the live view-model
// store the dashboard renders from.
//
// Stations arrive as raw manager payloads and are mapped once into typed
// records: the process-status map is flattened into an ordered entry list and
// the available-device set is derived from the hardware inventory minus the
// configured devices. The Store keeps an ordered collection eventually
// consistent with the manager by applying insert/update/remove events from
// the push feed; it never mutates optimistically, so the view converges only
// when the manager confirms a change.
package station
