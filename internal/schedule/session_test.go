package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type fakeEncoder struct {
	rooms     []string
	schedules map[string]map[string]Talk
	formats   []Format
	queue     []Job
	submitted []Job
	resubmits []struct {
		id      string
		formats []Format
	}
	failJobs bool
}

func (f *fakeEncoder) EncodingRooms(context.Context) ([]string, error) { return f.rooms, nil }

func (f *fakeEncoder) EncodingSchedule(_ context.Context, room string) (map[string]Talk, error) {
	talks, ok := f.schedules[room]
	if !ok {
		return map[string]Talk{}, nil
	}
	return talks, nil
}

func (f *fakeEncoder) EncodingFormats(context.Context) ([]Format, error) { return f.formats, nil }

func (f *fakeEncoder) EncodingJobs(context.Context) ([]Job, error) {
	if f.failJobs {
		return nil, errors.New("queue unavailable")
	}
	return f.queue, nil
}

func (f *fakeEncoder) EncodingInProgress(context.Context) (InProgress, error) {
	return InProgress{}, nil
}

func (f *fakeEncoder) EncodingOutputStatus(context.Context) ([]OutputEntry, error) {
	return nil, nil
}

func (f *fakeEncoder) SubmitEncode(_ context.Context, job Job) (string, error) {
	f.submitted = append(f.submitted, job)
	return "queued", nil
}

func (f *fakeEncoder) ResubmitEncode(_ context.Context, id string, formats []Format) ([]Alert, error) {
	f.resubmits = append(f.resubmits, struct {
		id      string
		formats []Format
	}{id, formats})
	return nil, nil
}

func encoderWithTalk() *fakeEncoder {
	return &fakeEncoder{
		rooms: []string{"main", "breakout"},
		schedules: map[string]map[string]Talk{
			"main": {"42": sampleTalk()},
		},
	}
}

func TestSetRoomReloadsTalks(t *testing.T) {
	session := NewSession(encoderWithTalk(), TimePolicySkipEmpty, nil)
	ctx := context.Background()

	if err := session.LoadRooms(ctx); err != nil {
		t.Fatalf("LoadRooms: %v", err)
	}
	if len(session.Rooms()) != 2 {
		t.Fatalf("unexpected rooms: %v", session.Rooms())
	}

	if err := session.SetRoom(ctx, "main"); err != nil {
		t.Fatalf("SetRoom: %v", err)
	}
	if len(session.Talks()) != 1 {
		t.Fatalf("expected talks loaded on room change, got %v", session.Talks())
	}

	if err := session.SetRoom(ctx, "breakout"); err != nil {
		t.Fatalf("SetRoom: %v", err)
	}
	if len(session.Talks()) != 0 {
		t.Fatal("expected talks replaced on room change")
	}
}

func TestSelectTalkReturnsFreshDraft(t *testing.T) {
	session := NewSession(encoderWithTalk(), TimePolicySkipEmpty, nil)
	ctx := context.Background()
	if err := session.SetRoom(ctx, "main"); err != nil {
		t.Fatalf("SetRoom: %v", err)
	}

	draft, err := session.SelectTalk("42")
	if err != nil {
		t.Fatalf("SelectTalk: %v", err)
	}
	_ = draft.SelectFile(0, true)

	again, err := session.SelectTalk("42")
	if err != nil {
		t.Fatalf("SelectTalk: %v", err)
	}
	if again.Playlist[0].Selected {
		t.Fatal("second draft must start unselected")
	}

	if _, err := session.SelectTalk("999"); err == nil {
		t.Fatal("expected error for unknown talk")
	}
}

func TestSubmitPostsComposedJob(t *testing.T) {
	encoder := encoderWithTalk()
	session := NewSession(encoder, TimePolicySkipEmpty, nil)
	ctx := context.Background()
	if err := session.SetRoom(ctx, "main"); err != nil {
		t.Fatalf("SetRoom: %v", err)
	}

	draft, _ := session.SelectTalk("42")
	_ = draft.SelectFile(0, true)
	_ = draft.SelectFile(2, true)
	draft.StartTime = "12:30"

	result, err := session.Submit(ctx, draft)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result != "queued" {
		t.Fatalf("unexpected result: %q", result)
	}
	if len(encoder.submitted) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(encoder.submitted))
	}
	job := encoder.submitted[0]
	if len(job.FileList) != 2 || job.InTime != "00:12:30.00" || job.OutTime != "" {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestResubmitFallsBackToLoadedFormats(t *testing.T) {
	encoder := encoderWithTalk()
	var formats []Format
	if err := json.Unmarshal([]byte(`[{"name":"mp4"},{"name":"ogv"}]`), &formats); err != nil {
		t.Fatalf("unmarshal formats: %v", err)
	}
	encoder.formats = formats

	session := NewSession(encoder, TimePolicySkipEmpty, nil)
	ctx := context.Background()
	if err := session.LoadFormats(ctx); err != nil {
		t.Fatalf("LoadFormats: %v", err)
	}

	if err := session.Resubmit(ctx, "42", nil); err != nil {
		t.Fatalf("Resubmit: %v", err)
	}
	if len(encoder.resubmits) != 1 {
		t.Fatalf("expected 1 resubmit, got %d", len(encoder.resubmits))
	}
	if len(encoder.resubmits[0].formats) != 2 {
		t.Fatalf("expected default formats, got %+v", encoder.resubmits[0].formats)
	}
}

func TestLoadFailurePopulatesAlertsAndKeepsState(t *testing.T) {
	encoder := encoderWithTalk()
	encoder.queue = []Job{{ScheduleID: 1}}
	session := NewSession(encoder, TimePolicySkipEmpty, nil)
	ctx := context.Background()

	if err := session.LoadQueue(ctx); err != nil {
		t.Fatalf("LoadQueue: %v", err)
	}
	encoder.failJobs = true
	if err := session.LoadQueue(ctx); err == nil {
		t.Fatal("expected error")
	}
	if len(session.Alerts()) != 1 || session.Alerts()[0].Type != "error" {
		t.Fatalf("expected error alert, got %+v", session.Alerts())
	}
	if len(session.Queue()) != 1 {
		t.Fatal("failed load must leave prior queue state unchanged")
	}
}

func TestFormatRoundTripsRawBytes(t *testing.T) {
	var format Format
	raw := `{"name":"mp4","extension":"mp4","vcodec":"h264"}`
	if err := json.Unmarshal([]byte(raw), &format); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if format.Name != "mp4" {
		t.Fatalf("unexpected name: %q", format.Name)
	}
	out, err := json.Marshal(format)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != raw {
		t.Fatalf("expected verbatim round-trip, got %s", out)
	}
}
