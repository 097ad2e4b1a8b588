package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://greenhouse.io/jobs/456", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id/apply", PlatformLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/External", PlatformWorkday},
		{"https://workday.com/jobs", PlatformWorkday},
		{"https://jobs.ashbyhq.com/acme/123/application", PlatformAshby},
		{"https://notgreenhouse.io.example.com/apply", PlatformUnknown},
		{"https://careers.example.com/apply", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(PlatformWorkday, 12))
	assert.True(t, ShouldUseBrowser(PlatformAshby, 3))
	assert.True(t, ShouldUseBrowser(PlatformGreenhouse, 0))
	assert.False(t, ShouldUseBrowser(PlatformGreenhouse, 8))
	assert.False(t, ShouldUseBrowser(PlatformUnknown, 1))
}
