package photo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zombor/photo-analyzer/internal/vision"
)

// SpeechLang is the language every caption is spoken in, whatever language
// the caption is written in
const SpeechLang = "en-US"

// State is the outcome of one render cycle
type State string

const (
	StateIdle      State = "idle"
	StateDisplayed State = "displayed"
	StateFailed    State = "failed"
)

// SpeakCommand asks the host to speak Text with the browser's default voice.
// Delivery is fire-and-forget.
type SpeakCommand struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// View is everything a host needs to display one render cycle
type View struct {
	State   State         `json:"state"`
	Caption string        `json:"caption,omitempty"`
	Tags    []string      `json:"tags,omitempty"`
	Error   string        `json:"error,omitempty"`
	Speak   *SpeakCommand `json:"speak,omitempty"`
}

// TagLine returns the relevant tags joined for display
func (v View) TagLine() string {
	return strings.Join(v.Tags, ", ")
}

// Render turns the outcome of one interaction into a View.
//
// No photo renders the idle view whatever res and err hold. A failure renders
// only the error line. Otherwise the caption (if any) is shown and spoken and
// the tags above vision.TagThreshold are listed in the order received.
func Render(p Photo, res *vision.Result, err error) View {
	if !p.Present() {
		return View{State: StateIdle}
	}
	if err != nil {
		return failedView(err)
	}
	if res == nil {
		return failedView(errors.New("no analysis result"))
	}

	view := View{State: StateDisplayed}
	if res.Caption != nil && res.Caption.Text != "" {
		view.Caption = res.Caption.Text
		view.Speak = &SpeakCommand{Text: res.Caption.Text, Lang: SpeechLang}
	}
	for _, tag := range vision.RelevantTags(res.Tags) {
		view.Tags = append(view.Tags, tag.Name)
	}
	return view
}

func failedView(err error) View {
	return View{
		State: StateFailed,
		Error: fmt.Sprintf("An error occurred during analysis: %v", err),
	}
}
