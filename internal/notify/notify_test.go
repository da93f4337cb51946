package notify

import (
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotification_Args(t *testing.T) {
	n := &Notification{AppName: "clrsync", Summary: "hi", ExpireTimeout: -1}

	args := n.Args()
	require.Len(t, args, 8)
	assert.Equal(t, "clrsync", args[0])
	assert.Equal(t, uint32(0), args[1])
	assert.Equal(t, "hi", args[3])
	assert.Equal(t, []string{}, args[5])
	assert.Equal(t, map[string]dbus.Variant{}, args[6])
	assert.Equal(t, int32(-1), args[7])
}

func TestApplyResult(t *testing.T) {
	tests := []struct {
		name        string
		applied     []string
		err         error
		wantSummary string
		wantBody    string
		wantUrgency byte
	}{
		{
			name:        "success",
			applied:     []string{"kitty", "waybar"},
			wantSummary: "Applied theme dark",
			wantBody:    "Updated 2 template(s): kitty, waybar",
			wantUrgency: UrgencyLow,
		},
		{
			name:        "nothing written",
			wantSummary: "Applied theme dark",
			wantUrgency: UrgencyLow,
		},
		{
			name:        "failure",
			applied:     []string{"kitty"},
			err:         errors.New("Template file not found [/x]"),
			wantSummary: "Failed to apply theme dark",
			wantBody:    "Template file not found [/x]",
			wantUrgency: UrgencyCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := ApplyResult("dark", tt.applied, tt.err)
			assert.Equal(t, "clrsync", n.AppName)
			assert.Equal(t, tt.wantSummary, n.Summary)
			assert.Equal(t, tt.wantBody, n.Body)
			assert.Equal(t, tt.wantUrgency, n.Hints["urgency"].Value())
		})
	}
}
