package schedule

import "encoding/json"

// MarshalSchedules serialises a full set of job schedules to the persisted
// artefact shape, keyed by job id in the order given.
func MarshalSchedules(schedules []*JobSchedule) ([]byte, error) {
	return json.Marshal(schedules)
}

// UnmarshalSchedules parses the persisted artefact shape back into
// JobSchedule values. Round-trips exactly with MarshalSchedules.
func UnmarshalSchedules(data []byte) ([]*JobSchedule, error) {
	var schedules []*JobSchedule
	if err := json.Unmarshal(data, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}
