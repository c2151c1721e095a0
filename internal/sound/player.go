// Package sound plays a script's soundtrack through whatever command-line
// audio player the host has. Playback is strictly fire-and-forget: every
// failure is logged and swallowed, and nothing in the experience ever
// depends on whether audio actually started.
package sound

import (
	"os/exec"
	"sync"

	"github.com/charmbracelet/log"
)

// Player controls soundtrack playback.
type Player interface {
	// Start begins playback. It never blocks and never fails loudly.
	Start()
	// Pause stops playback, keeping the player ready to resume.
	Pause()
	// Resume starts playback again after a pause.
	Resume()
	// Close stops playback and releases the player.
	Close()
	// Playing reports whether a playback process is currently alive.
	Playing() bool
}

// New picks a player for the given soundtrack path. Remote sessions and
// --silent runs pass silent=true; scripts without a soundtrack get the
// no-op player as well.
func New(soundtrack string, silent bool, logger *log.Logger) Player {
	if silent || soundtrack == "" {
		return NoopPlayer{}
	}
	return NewCmdPlayer(soundtrack, logger)
}

// NoopPlayer ignores every call. Used when sound is disabled or unavailable.
type NoopPlayer struct{}

func (NoopPlayer) Start()        {}
func (NoopPlayer) Pause()        {}
func (NoopPlayer) Resume()       {}
func (NoopPlayer) Close()        {}
func (NoopPlayer) Playing() bool { return false }

// candidates are the system players we know how to drive, in preference
// order. The soundtrack path is appended to the args.
var candidates = []struct {
	bin  string
	args []string
}{
	{"afplay", nil},
	{"paplay", nil},
	{"mpv", []string{"--no-video", "--really-quiet"}},
	{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	{"aplay", []string{"-q"}},
}

// CmdPlayer spawns an external audio player process. Pause kills the
// process and Resume spawns it again from the start; terminal players
// cannot seek, so that is the honest contract.
type CmdPlayer struct {
	path   string
	logger *log.Logger

	mu      sync.Mutex
	cmd     *exec.Cmd
	playing bool
	warned  bool
}

// NewCmdPlayer creates a player for the given soundtrack path.
func NewCmdPlayer(path string, logger *log.Logger) *CmdPlayer {
	if logger == nil {
		logger = log.Default()
	}
	return &CmdPlayer{path: path, logger: logger}
}

// Start spawns the first available system player on the soundtrack. A
// missing binary or an unplayable file is logged once and swallowed.
func (p *CmdPlayer) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startLocked()
}

func (p *CmdPlayer) startLocked() {
	if p.playing {
		return
	}

	bin, args, ok := p.locate()
	if !ok {
		p.warnOnce("no audio player found", "tried", "afplay, paplay, mpv, ffplay, aplay")
		return
	}

	cmd := exec.Command(bin, append(append([]string{}, args...), p.path)...)
	if err := cmd.Start(); err != nil {
		p.warnOnce("cannot start audio player", "player", bin, "err", err)
		return
	}

	p.cmd = cmd
	p.playing = true

	// Reap the process; clears the playing flag when the track ends or
	// the player is killed.
	go func() {
		err := cmd.Wait()
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.cmd == cmd {
			p.playing = false
			p.cmd = nil
		}
		if err != nil {
			p.logger.Debug("audio player exited", "player", bin, "err", err)
		}
	}()
}

func (p *CmdPlayer) locate() (string, []string, bool) {
	for _, c := range candidates {
		if path, err := exec.LookPath(c.bin); err == nil {
			return path, c.args, true
		}
	}
	return "", nil, false
}

func (p *CmdPlayer) warnOnce(msg string, kv ...any) {
	if p.warned {
		p.logger.Debug(msg, kv...)
		return
	}
	p.warned = true
	p.logger.Warn(msg, kv...)
}

// Pause stops playback.
func (p *CmdPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Resume starts the track again.
func (p *CmdPlayer) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startLocked()
}

// Close stops playback for good.
func (p *CmdPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *CmdPlayer) stopLocked() {
	if p.cmd != nil && p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	p.cmd = nil
	p.playing = false
}

// Playing reports whether a playback process is alive right now.
func (p *CmdPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}
