package queue

import "testing"

func TestDeriveTitle(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/media/board_meeting-2024.mp4", "Board Meeting 2024"},
		{"/media/interview.final.wav", "Interview Final"},
		{"episode 3.mkv", "Episode 3"},
		{"", "Untitled"},
		{"/media/!!!.wav", "Untitled"},
	}
	for _, tc := range cases {
		if got := DeriveTitle(tc.path); got != tc.want {
			t.Errorf("DeriveTitle(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
