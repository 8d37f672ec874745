// Package terminal provides the keyboard-driven form for managing the song
// library from a terminal.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/contre95/songshelf/src/features/adding"
	"github.com/contre95/songshelf/src/features/deleting"
	"github.com/contre95/songshelf/src/features/editing"
	"github.com/contre95/songshelf/src/features/library"
	"github.com/contre95/songshelf/src/music"
)

// Field indexes into the form inputs.
const (
	fieldID = iota
	fieldTitle
	fieldArtist
	fieldAlbum
	fieldGenre
	fieldYear
	fieldCount
)

var fieldLabels = [fieldCount]string{"ID", "Title", "Artist", "Album", "Genre", "Year"}

// View modes.
type mode int

const (
	modeForm mode = iota
	modeList
)

// Services holds the feature services the form drives.
type Services struct {
	Library  *library.Service
	Adding   *adding.Service
	Editing  *editing.Service
	Deleting *deleting.Service
}

// resultMsg carries the outcome of an action back into Update.
type resultMsg struct {
	status string
	err    error
	songs  []*music.Song
	list   bool
	clear  bool
}

// Model is the Bubble Tea model for the song form.
type Model struct {
	ctx      context.Context
	services Services

	inputs [fieldCount]textinput.Model
	focus  int
	mode   mode

	songs      []*music.Song
	listOffset int

	status    string
	statusErr bool

	width, height int
}

// New creates the form with the title field focused.
func New(ctx context.Context, services Services) Model {
	m := Model{ctx: ctx, services: services, focus: fieldTitle}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 500
		ti.Width = 40
		m.inputs[i] = ti
	}
	m.inputs[fieldID].Placeholder = "song id for update/delete"
	m.inputs[fieldYear].CharLimit = 4
	m.inputs[fieldYear].Placeholder = "e.g. 1971"
	m.inputs[fieldTitle].Focus()
	m.status = "ctrl+a add · ctrl+p process · ctrl+l list · ctrl+u update · ctrl+d delete · ctrl+z undo · ctrl+f flush"
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case resultMsg:
		m.statusErr = msg.err != nil
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		if msg.list {
			m.songs = msg.songs
			m.listOffset = 0
			m.mode = modeList
		}
		if msg.clear {
			m.clearInputs()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.mode == modeList {
			m.mode = modeForm
			return m, nil
		}
		m.clearInputs()
		m.status, m.statusErr = "Form cleared", false
		return m, nil
	case "ctrl+a":
		return m, m.enqueue()
	case "ctrl+p":
		return m, m.process()
	case "ctrl+l":
		return m, m.list()
	case "ctrl+u":
		return m, m.update()
	case "ctrl+d":
		return m, m.stageDelete()
	case "ctrl+z":
		return m, m.undo()
	case "ctrl+f":
		return m, m.flush()
	}

	if m.mode == modeList {
		switch msg.String() {
		case "up", "k":
			if m.listOffset > 0 {
				m.listOffset--
			}
		case "down", "j":
			if m.listOffset < len(m.songs)-1 {
				m.listOffset++
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "tab", "down", "enter":
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil
	case "shift+tab", "up":
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m *Model) clearInputs() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
}

func (m Model) value(field int) string {
	return strings.TrimSpace(m.inputs[field].Value())
}

func (m Model) enqueue() tea.Cmd {
	input := adding.SongInput{
		Title:  m.value(fieldTitle),
		Artist: m.value(fieldArtist),
		Album:  m.value(fieldAlbum),
		Genre:  m.value(fieldGenre),
	}
	year, err := parseYear(m.value(fieldYear))
	if err != nil {
		return fail(err)
	}
	input.Year = year
	ctx, svc := m.ctx, m.services.Adding
	return func() tea.Msg {
		song, err := svc.Enqueue(ctx, input)
		if err != nil {
			return resultMsg{err: err}
		}
		return resultMsg{status: fmt.Sprintf("Queued %s (%d pending)", song.String(), svc.Len()), clear: true}
	}
}

func (m Model) process() tea.Cmd {
	ctx, svc := m.ctx, m.services.Adding
	return func() tea.Msg {
		if svc.Len() == 0 {
			return resultMsg{err: adding.ErrQueueEmpty}
		}
		result := svc.ProcessAll(ctx)
		if result.Failed > 0 {
			return resultMsg{err: fmt.Errorf("added %d songs, %d failed: %s", result.Processed, result.Failed, result.Failures[0].Reason)}
		}
		return resultMsg{status: fmt.Sprintf("Added %d songs to the library", result.Processed)}
	}
}

func (m Model) list() tea.Cmd {
	ctx, svc := m.ctx, m.services.Library
	return func() tea.Msg {
		songs, err := svc.ListSongs(ctx)
		if err != nil {
			return resultMsg{err: err}
		}
		return resultMsg{status: fmt.Sprintf("%d songs · esc to go back", len(songs)), songs: songs, list: true}
	}
}

func (m Model) update() tea.Cmd {
	id := m.value(fieldID)
	if id == "" {
		return fail(errors.New("enter the ID of the song to update"))
	}
	var upd music.SongUpdate
	for field, dst := range map[int]**string{
		fieldTitle:  &upd.Title,
		fieldArtist: &upd.Artist,
		fieldAlbum:  &upd.Album,
		fieldGenre:  &upd.Genre,
	} {
		if v := m.value(field); v != "" {
			*dst = &v
		}
	}
	if v := m.value(fieldYear); v != "" {
		year, err := parseYear(v)
		if err != nil {
			return fail(err)
		}
		upd.Year = &year
	}
	ctx, svc := m.ctx, m.services.Editing
	return func() tea.Msg {
		song, err := svc.UpdateSong(ctx, id, upd)
		if err != nil {
			return resultMsg{err: err}
		}
		return resultMsg{status: "Updated " + song.String(), clear: true}
	}
}

func (m Model) stageDelete() tea.Cmd {
	id := m.value(fieldID)
	if id == "" {
		return fail(errors.New("enter the ID of the song to delete"))
	}
	ctx, svc := m.ctx, m.services.Deleting
	return func() tea.Msg {
		song, err := svc.Stage(ctx, id)
		if err != nil {
			return resultMsg{err: err}
		}
		return resultMsg{status: fmt.Sprintf("Moved %s to the delete stack (%d staged)", song.String(), svc.Len()), clear: true}
	}
}

func (m Model) undo() tea.Cmd {
	svc := m.services.Deleting
	return func() tea.Msg {
		song, err := svc.Undo()
		if err != nil {
			return resultMsg{err: err}
		}
		return resultMsg{status: "Restored " + song.String()}
	}
}

func (m Model) flush() tea.Cmd {
	ctx, svc := m.ctx, m.services.Deleting
	return func() tea.Msg {
		if svc.Len() == 0 {
			return resultMsg{err: deleting.ErrNothingStaged}
		}
		result := svc.Flush(ctx)
		if result.Failed > 0 {
			return resultMsg{err: fmt.Errorf("deleted %d songs, %d failed", result.Deleted, result.Failed)}
		}
		return resultMsg{status: fmt.Sprintf("Deleted %d songs", result.Deleted)}
	}
}

func fail(err error) tea.Cmd {
	return func() tea.Msg { return resultMsg{err: err} }
}

func parseYear(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: year must be a number, got %q", music.ErrInvalidSong, s)
	}
	return year, nil
}
