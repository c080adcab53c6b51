package transition

import (
	"testing"

	"github.com/tanema/gween/ease"

	"github.com/vango-dev/widgetkit/pkg/frame"
	"github.com/vango-dev/widgetkit/pkg/memdom"
	"github.com/vango-dev/widgetkit/pkg/vdom"
)

func list(items ...string) *vdom.VNode {
	return vdom.Ul(vdom.Range(items, func(s string, _ int) *vdom.VNode {
		return vdom.Li(vdom.Key(s), vdom.EnterTransition("fade"), vdom.ExitTransition("fade"), s)
	}))
}

func setup(t *testing.T) (*Set, *frame.Manual, *memdom.Document, *vdom.Projection) {
	t.Helper()
	frames := frame.NewManual()
	doc := memdom.New()
	set := New(frames, doc.SetStyle, WithStep(0.1), WithEffect("fade", Effect{
		Style: "opacity", From: 0, To: 1, Duration: 0.2, Ease: ease.Linear,
	}))
	p, err := vdom.Append(doc.Root(), list("a"), vdom.Options{Surface: doc, Transitions: set})
	if err != nil {
		t.Fatal(err)
	}
	return set, frames, doc, p
}

func TestEnterRunsToCompletion(t *testing.T) {
	set, frames, doc, p := setup(t)
	if err := p.Update(list("a", "b")); err != nil {
		t.Fatal(err)
	}
	li := doc.FindAll(memdom.ByTag("li"))[1]
	if li.Style("opacity") != "0" {
		t.Errorf("opacity = %q, want 0 at start", li.Style("opacity"))
	}

	frames.Fire()
	if li.Style("opacity") != "0.5" {
		t.Errorf("opacity = %q, want 0.5 half way", li.Style("opacity"))
	}
	frames.Fire()
	if li.Style("opacity") != "1" {
		t.Errorf("opacity = %q, want 1", li.Style("opacity"))
	}
	if set.Running() != 0 || frames.Pending() != 0 {
		t.Errorf("Running() = %d, Pending() = %d, want both 0", set.Running(), frames.Pending())
	}
}

func TestExitDetachesWhenDone(t *testing.T) {
	set, frames, doc, p := setup(t)
	if err := p.Update(list()); err != nil {
		t.Fatal(err)
	}
	ul := doc.Find(memdom.ByTag("ul"))
	if len(ul.Children()) != 1 {
		t.Fatal("node detached before the exit tween ran")
	}
	if set.Running() != 1 {
		t.Errorf("Running() = %d, want 1", set.Running())
	}

	frames.Fire()
	frames.Fire()
	if len(ul.Children()) != 0 {
		t.Error("node still attached after the exit tween finished")
	}
}

func TestUnknownToken(t *testing.T) {
	frames := frame.NewManual()
	doc := memdom.New()
	set := New(frames, doc.SetStyle)
	el := doc.CreateElement("", "div")
	doc.InsertBefore(doc.Root(), el, nil)

	set.Enter(el, nil, "wobble")
	if set.Running() != 0 {
		t.Error("unknown enter token should not start a tween")
	}

	done := false
	set.Exit(el, nil, "wobble", func() { done = true })
	if !done {
		t.Error("unknown exit token should finish at once")
	}
}

func TestBuiltInFormats(t *testing.T) {
	if got := Slide.format(-12); got != "translateY(-12.0px)" {
		t.Errorf("Slide.format() = %q", got)
	}
	if got := Scale.format(1); got != "scale(1.000)" {
		t.Errorf("Scale.format() = %q", got)
	}
	if got := Fade.format(0.25); got != "0.25" {
		t.Errorf("Fade.format() = %q", got)
	}
}
