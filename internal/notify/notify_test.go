package notify

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/cutout/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func recorder(out *[]sent) SendFunc {
	return func(title, body string, opts platform.Options) error {
		_, err := os.Stat(opts.IconPath)
		*out = append(*out, sent{title, body, opts, opts.IconPath != "" && err == nil})
		return nil
	}
}

func TestDisabledByDefault(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recorder(&got))
	n.Save("x.png")
	n.Copy("", nil)
	assert.Empty(t, got)
}

func TestSave(t *testing.T) {
	var got []sent
	path := filepath.Join(t.TempDir(), "cut.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o644))

	n := New(DefaultPreferences()).WithSender(recorder(&got))
	n.Enable(EventSave, true)
	n.Save(path)

	require.Len(t, got, 1)
	assert.Equal(t, "Cutout", got[0].title)
	assert.Equal(t, "Saved "+path, got[0].body)
	assert.Equal(t, path, got[0].opts.IconPath)
}

func TestCopyPreview(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recorder(&got))
	n.Enable(EventCopy, true)
	n.Copy("", image.NewNRGBA(image.Rect(0, 0, 600, 300)))

	require.Len(t, got, 1)
	assert.Equal(t, "Copied cutout to clipboard", got[0].body)
	assert.True(t, got[0].iconExisted, "preview exists while sending")
	_, err := os.Stat(got[0].opts.IconPath)
	assert.True(t, errors.Is(err, os.ErrNotExist), "preview removed afterwards")
}

func TestLoadPreferences(t *testing.T) {
	t.Setenv("CUTOUT_NOTIFY_TITLE", "Clips")
	t.Setenv("CUTOUT_NOTIFY_COPY_TEXT", "Got %s")
	prefs := LoadPreferences()
	assert.Equal(t, "Clips", prefs.Title)
	assert.Equal(t, "Got %s", prefs.Events[EventCopy].Template)
	assert.Equal(t, "Saved %s", prefs.Events[EventSave].Template)
}

func TestSendErrorIsLogged(t *testing.T) {
	calls := 0
	n := New(DefaultPreferences()).WithSender(func(string, string, platform.Options) error {
		calls++
		return errors.New("no bus")
	})
	n.Enable(EventCopy, true)
	n.Copy("text", nil)
	assert.Equal(t, 1, calls)
}

func TestNilNotifier(t *testing.T) {
	var n *Notifier
	n.Enable(EventSave, true)
	n.Save("x")
	n.Copy("x", nil)
}
