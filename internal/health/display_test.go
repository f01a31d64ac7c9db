package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeUntilExpiry(t *testing.T) {
	tests := []struct {
		name   string
		expiry time.Time
		want   string
	}{
		{"long past", now.AddDate(-1, 0, 0), "EXPIRED"},
		{"just past", now.Add(-time.Second), "EXPIRED"},
		{"exactly now", now, "EXPIRED"},
		{"ninety days", now.Add(90 * day), "3 months"},
		{"thirty one days", now.Add(31 * day), "1 months"},
		{"thirty days", now.Add(30*day + 5*time.Hour), "30d 5h"},
		{"two days", now.Add(2*day + 3*time.Hour + 10*time.Minute), "2d 3h"},
		{"hours only", now.Add(7*time.Hour + 59*time.Minute), "7h remaining"},
		{"minutes only", now.Add(20 * time.Minute), "0h remaining"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeUntilExpiry(tt.expiry, now))
		})
	}
}

func TestAgeSince(t *testing.T) {
	tests := []struct {
		name    string
		created time.Time
		want    string
	}{
		{"366 days", now.Add(-366 * day), "1 year old"},
		{"two years", now.Add(-731 * day), "2 years old"},
		{"364 days", now.Add(-364 * day), "12 months old"},
		{"one month", now.Add(-45 * day), "1 month old"},
		{"two months", now.Add(-60 * day), "2 months old"},
		{"one day", now.Add(-day), "1 day old"},
		{"29 days", now.Add(-29 * day), "29 days old"},
		{"an hour", now.Add(-time.Hour), "Just ghosted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeSince(tt.created, now))
		})
	}
}
