package domain

import "testing"

func TestEntityID_RoundTrip(t *testing.T) {
	id := EntityID(12345)
	parsed, err := ParseEntityID(id.String())
	if err != nil {
		t.Fatalf("ParseEntityID: %v", err)
	}
	if parsed != id {
		t.Errorf("round trip: got %d, want %d", parsed, id)
	}
}

func TestParseEntityID_Invalid(t *testing.T) {
	for _, s := range []string{"", "abc", "12.5", "12abc"} {
		if _, err := ParseEntityID(s); err == nil {
			t.Errorf("ParseEntityID(%q): expected error", s)
		}
	}
}

func TestKind_Valid(t *testing.T) {
	if !KindJobs.Valid() || !KindCandidates.Valid() {
		t.Error("expected jobs and candidates to be valid kinds")
	}
	if Kind("users").Valid() {
		t.Error("unexpected valid kind: users")
	}
}

func TestUserType_Valid(t *testing.T) {
	if !UserTypeJobseeker.Valid() || !UserTypeRecruiter.Valid() {
		t.Error("expected jobseeker and recruiter to be valid user types")
	}
	if UserType("admin").Valid() {
		t.Error("unexpected valid user type: admin")
	}
}

func TestApplicationStatus_Valid(t *testing.T) {
	for _, s := range []ApplicationStatus{
		StatusPending, StatusReviewed, StatusShortlisted, StatusRejected,
	} {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	if ApplicationStatus("hired").Valid() {
		t.Error("unexpected valid status: hired")
	}
}
