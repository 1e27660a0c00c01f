// ABOUTME: Optional voice input capability and voice command parsing
// ABOUTME: Hosts without speech recognition get UnsupportedVoice instead of feature checks
package copilot

import (
	"errors"
	"strings"
)

// ErrVoiceUnsupported is returned by Start when the host has no speech recognition.
var ErrVoiceUnsupported = errors.New("voice commands not supported in this environment")

// VoiceInput is a speech recognition source.
type VoiceInput interface {
	Start() error
	Stop() error
	OnResult(handler func(transcript string))
}

// UnsupportedVoice is the VoiceInput for hosts without speech recognition.
type UnsupportedVoice struct{}

func (UnsupportedVoice) Start() error { return ErrVoiceUnsupported }

func (UnsupportedVoice) Stop() error { return nil }

func (UnsupportedVoice) OnResult(func(string)) {}

// VoiceAction is what a recognised voice command asks for.
type VoiceAction int

const (
	VoiceNone VoiceAction = iota
	VoiceNavigate
	VoiceToggleHighContrast
	VoiceHelp
)

// VoiceCommand is a parsed transcript.
type VoiceCommand struct {
	Action       VoiceAction
	Route        string
	Announcement string
}

// VoiceHelpText lists the supported phrases.
const VoiceHelpText = "Available commands: go to dashboard, go to crisis room, go to analytics, go to automation, toggle high contrast"

var voiceRoutes = []struct {
	phrases []string
	route   string
	name    string
}{
	{[]string{"go to dashboard", "open dashboard"}, "/", "dashboard"},
	{[]string{"go to crisis", "open crisis room"}, "/crisis", "crisis room"},
	{[]string{"go to analytics", "open analytics"}, "/analytics", "analytics"},
	{[]string{"go to automation", "open automation"}, "/automation", "automation"},
}

// ParseVoiceCommand maps a transcript to a command. Unknown phrases yield VoiceNone.
func ParseVoiceCommand(transcript string) VoiceCommand {
	lower := strings.ToLower(transcript)

	for _, vr := range voiceRoutes {
		for _, p := range vr.phrases {
			if strings.Contains(lower, p) {
				return VoiceCommand{
					Action:       VoiceNavigate,
					Route:        vr.route,
					Announcement: "Navigating to " + vr.name,
				}
			}
		}
	}

	if strings.Contains(lower, "high contrast") {
		return VoiceCommand{Action: VoiceToggleHighContrast}
	}
	if strings.Contains(lower, "help") {
		return VoiceCommand{Action: VoiceHelp, Announcement: VoiceHelpText}
	}
	return VoiceCommand{Action: VoiceNone}
}
