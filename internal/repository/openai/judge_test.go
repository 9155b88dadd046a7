package openai

import "testing"

func TestParseScore(t *testing.T) {
	cases := []struct {
		reply   string
		want    int
		wantErr bool
	}{
		{"85", 85, false},
		{" 100 ", 100, false},
		{"Score: 72", 72, false},
		{"I would rate this 60 out of 100", 60, false},
		{"no number here", 0, true},
		{"", 0, true},
	}

	for _, c := range cases {
		got, err := parseScore(c.reply)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseScore(%q) expected error", c.reply)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseScore(%q): %v", c.reply, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseScore(%q) = %d, want %d", c.reply, got, c.want)
		}
	}
}
