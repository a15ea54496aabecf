package models

import "testing"

func TestInterviewStateColor(t *testing.T) {
	tests := map[InterviewState]string{
		InterviewScheduled:  "#48b93d",
		InterviewInProgress: "#3d6ab9",
		InterviewFinished:   "#eed238",
		InterviewCancelled:  "#ff2e00",
		"":                  "",
	}
	for state, want := range tests {
		if got := state.Color(); got != want {
			t.Errorf("%q.Color() = %q, want %q", state, got, want)
		}
		if !state.Valid() {
			t.Errorf("%q should be valid", state)
		}
	}

	if InterviewState("Pendiente").Valid() {
		t.Error("unknown state should be invalid")
	}
}

func TestOfferDraftRecordOmitsAbsentCoordinates(t *testing.T) {
	lat := 40.4168
	draft := OfferDraft{
		Position:       "Backend",
		Company:        "Acme",
		JobLatitude:    &lat,
		InterviewState: InterviewScheduled,
	}

	record := draft.Record()

	if got, ok := record["job_latitude"]; !ok || got != lat {
		t.Errorf("job_latitude = %v (present %v), want %v", got, ok, lat)
	}
	for _, key := range []string{"job_longitude", "interview_latitude", "interview_longitude"} {
		if _, ok := record[key]; ok {
			t.Errorf("record should not contain %q", key)
		}
	}
	if record["interview_color"] != "#48b93d" {
		t.Errorf("interview_color = %v", record["interview_color"])
	}
	if record["interview_state"] != "Programada" {
		t.Errorf("interview_state = %v", record["interview_state"])
	}
}

func TestOfferDraftRoundTrip(t *testing.T) {
	lon := -3.7
	offer := Offer{
		Position:           "Backend",
		InterviewDate:      "12-06-2024",
		InterviewHour:      "10:00",
		InterviewLongitude: &lon,
		InterviewState:     InterviewInProgress,
	}

	draft := offer.Draft()
	if !draft.HasInterview() {
		t.Fatal("expected draft to carry an interview")
	}
	if draft.InterviewLongitude == nil || *draft.InterviewLongitude != lon {
		t.Errorf("interview longitude not carried over")
	}
	if draft.InterviewState != InterviewInProgress {
		t.Errorf("state = %q", draft.InterviewState)
	}
}
