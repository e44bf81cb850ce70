// Package schedule holds the job/workload data model and the persisted
// JobSchedule artefact shared between the Admission Controller and the
// Traffic Engineer. JSON (de)serialisation uses the
// standard library's encoding/json — no third-party codec appears anywhere
// in the retrieval pack, so this surface stays on the standard library;
// see DESIGN.md.
package schedule
