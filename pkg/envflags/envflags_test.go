package envflags

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want Flags
	}{
		{"empty", "", Flags{}},
		{"backup only", "backup", Flags{Backup: true}},
		{"debug only", "debug", Flags{Debug: true}},
		{"both", "backup,debug", Flags{Backup: true, Debug: true}},
		{"spaced", " backup , debug ", Flags{Backup: true, Debug: true}},
		{"unknown ignored", "backup,bogus", Flags{Backup: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ORC_CODE", tt.env)
			resetForTest()
			got := Get()
			if got != tt.want {
				t.Errorf("Get() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGetIsIdempotent(t *testing.T) {
	t.Setenv("ORC_CODE", "debug")
	resetForTest()
	first := Get()
	t.Setenv("ORC_CODE", "backup")
	second := Get()
	if first != second {
		t.Errorf("Get() changed across calls without reset: %+v != %+v", first, second)
	}
}
