package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/calc-climb/internal/config"
	"github.com/vovakirdan/calc-climb/internal/core"
	"github.com/vovakirdan/calc-climb/internal/games/calcclimb"
	"github.com/vovakirdan/calc-climb/internal/multiplayer"
)

// OnlineState is the step of the online flow.
type OnlineState int

const (
	OnlineStateChooseMode    OnlineState = iota // create or join
	OnlineStateHostWaiting                      // room created, waiting for a peer
	OnlineStateJoinEnterCode                    // typing a room code
	OnlineStateJoinWaiting                      // join sent, waiting for the answer
	OnlineStateInMatch                          // playing, or looking at a result
)

// OnlineModel runs the lobby and the matches of one online visit.
type OnlineModel struct {
	state   OnlineState
	relay   Relay
	session *calcclimb.Session
	screen  *core.Screen
	input   *GameInput
	config  core.RuntimeConfig
	code    textinput.Model

	roomCode    string
	playerIndex int
	status      string
	errMsg      string
	ticking     bool

	backToMenu bool
	quitting   bool
}

// NewOnlineModel creates the online flow over relay.
func NewOnlineModel(relay Relay, cfg core.RuntimeConfig, gameCfg config.CalcClimbConfig) OnlineModel {
	ti := textinput.New()
	ti.Placeholder = "ABCDE"
	ti.CharLimit = multiplayer.CodeLength
	ti.Prompt = "code: "

	s := calcclimb.NewSession(calcclimb.ModeCampaign, gameCfg)
	s.Reset(cfg)

	return OnlineModel{
		state:   OnlineStateChooseMode,
		relay:   relay,
		session: s,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		input:   NewGameInput(gameCfg.Input.HoldTicks),
		config:  cfg,
		code:    ti,
	}
}

// Init starts listening to the relay.
func (m OnlineModel) Init() tea.Cmd {
	return waitForEvent(m.relay)
}

// Update handles messages.
func (m OnlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == OnlineStateInMatch {
			return m.handleMatchKey(msg)
		}
		return m.handleLobbyKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case relayEventMsg:
		if msg.from != m.relay.ID() {
			return m, nil
		}
		return m.handleEvent(msg.event)

	case relayClosedMsg:
		if msg.from != m.relay.ID() {
			return m, nil
		}
		m.errMsg = "connection to the server was lost"
		m.backToMenu = true
		return m, nil
	}

	if m.state == OnlineStateJoinEnterCode {
		var cmd tea.Cmd
		m.code, cmd = m.code.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m OnlineModel) handleEvent(evt multiplayer.SessionEvent) (tea.Model, tea.Cmd) {
	next := waitForEvent(m.relay)

	switch e := evt.(type) {
	case multiplayer.RoomCreatedEvent:
		m.roomCode = e.Code
		m.playerIndex = e.PlayerIndex
		m.state = OnlineStateHostWaiting
		m.status = ""

	case multiplayer.JoinResultEvent:
		if e.Err != nil {
			m.errMsg = describeRoomError(e.Err)
			m.state = OnlineStateJoinEnterCode
			focus := m.code.Focus()
			return m, tea.Batch(next, focus)
		}
		m.roomCode = e.Code
		m.playerIndex = e.PlayerIndex
		m.status = "joined, starting..."

	case multiplayer.OpponentJoinedEvent:
		m.status = "opponent joined!"

	case multiplayer.GameStartEvent:
		m.roomCode = e.Code
		m.playerIndex = e.PlayerIndex
		m.session.StartOnline(e.LevelIndex, e.Seed)
		m.input.Reset()
		m.state = OnlineStateInMatch
		m.errMsg = ""
		if !m.ticking {
			m.ticking = true
			return m, tea.Batch(next, tickCmd(m.config.TickRate))
		}

	case multiplayer.OpponentStateEvent:
		m.session.ApplyOpponentState(e.State)

	case multiplayer.OpponentTileClaimedEvent:
		m.session.ApplyTileClaimed(e.Claim)

	case multiplayer.GameResultEvent:
		m.session.SetResult(e.Result)

	case multiplayer.OpponentWantsRematchEvent:
		m.session.OpponentWantsRematch()

	case multiplayer.OpponentLeftEvent:
		if m.state == OnlineStateInMatch {
			m.session.OpponentLeft()
		} else {
			m.status = "opponent left"
		}

	case multiplayer.RoomErrorEvent:
		m.errMsg = describeRoomError(e.Err)
	}
	return m, next
}

func (m OnlineModel) handleTick() (tea.Model, tea.Cmd) {
	if m.state != OnlineStateInMatch || m.quitting {
		m.ticking = false
		return m, nil
	}

	m.session.Step(m.input.Frame())
	id := m.relay.ID()
	for _, e := range m.session.DrainEvents() {
		switch e := e.(type) {
		case calcclimb.StateSyncEvent:
			m.relay.Send(multiplayer.PlayerStateMsg{SessionID: id, State: e.State})
		case calcclimb.TileClaimEvent:
			m.relay.Send(multiplayer.TileClaimedMsg{SessionID: id, Claim: e.Claim})
		case calcclimb.WonEvent:
			m.relay.Send(multiplayer.PlayerWonMsg{SessionID: id})
		}
	}
	return m, tickCmd(m.config.TickRate)
}

func (m OnlineModel) handleMatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.input.Press(msg) {
	case core.ActionQuit:
		return m.quit()

	case core.ActionBack:
		m.relay.Send(multiplayer.LeaveRoomMsg{SessionID: m.relay.ID()})
		m.state = OnlineStateChooseMode
		m.status = "left the room"
		m.roomCode = ""
		return m, nil

	case core.ActionRematch:
		st := m.session.State()
		if st.GameOver && m.session.Result() != "" {
			m.relay.Send(multiplayer.RematchMsg{SessionID: m.relay.ID()})
			m.session.RematchRequested()
		}
	}
	return m, nil
}

func (m OnlineModel) handleLobbyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m.quit()
	}
	id := m.relay.ID()

	switch m.state {
	case OnlineStateChooseMode:
		switch key {
		case "c", "h", "1":
			m.errMsg = ""
			m.status = "creating room..."
			m.relay.Send(multiplayer.CreateRoomMsg{SessionID: id})
		case "j", "2":
			m.errMsg = ""
			m.status = ""
			m.state = OnlineStateJoinEnterCode
			m.code.SetValue("")
			focus := m.code.Focus()
			return m, focus
		case "esc", "b":
			m.backToMenu = true
		case "q":
			return m.quit()
		}

	case OnlineStateHostWaiting:
		switch key {
		case "esc", "b":
			m.relay.Send(multiplayer.LeaveRoomMsg{SessionID: id})
			m.state = OnlineStateChooseMode
			m.roomCode = ""
			m.status = ""
		case "q":
			return m.quit()
		}

	case OnlineStateJoinEnterCode:
		switch key {
		case "esc":
			m.code.Blur()
			m.state = OnlineStateChooseMode
		case "enter":
			code := multiplayer.NormalizeCode(m.code.Value())
			if code == "" {
				return m, nil
			}
			m.code.Blur()
			m.errMsg = ""
			m.roomCode = code
			m.state = OnlineStateJoinWaiting
			m.relay.Send(multiplayer.JoinRoomMsg{SessionID: id, Code: code})
		default:
			var cmd tea.Cmd
			m.code, cmd = m.code.Update(msg)
			return m, cmd
		}

	case OnlineStateJoinWaiting:
		if key == "esc" || key == "b" {
			m.relay.Send(multiplayer.LeaveRoomMsg{SessionID: id})
			m.state = OnlineStateChooseMode
			m.status = ""
		}
	}
	return m, nil
}

func (m OnlineModel) quit() (tea.Model, tea.Cmd) {
	m.relay.Send(multiplayer.LeaveRoomMsg{SessionID: m.relay.ID()})
	m.quitting = true
	return m, tea.Quit
}

// View renders the lobby or the match.
func (m OnlineModel) View() string {
	if m.quitting {
		return ""
	}
	if m.state == OnlineStateInMatch {
		m.screen.Clear()
		m.session.Render(m.screen)
		return RenderScreen(m.screen)
	}

	var lines []string
	add := func(s string) { lines = append(lines, centerText(s, m.config.ScreenW)) }

	lines = append(lines, "")
	switch m.state {
	case OnlineStateChooseMode:
		add(titleStyle.Render("ONLINE MATCH"))
		add("")
		add("first to the target wins")
		add("")
		add("[C] create a room")
		add("[J] join a room")
		add("")
		add(dimStyle.Render("esc back  q quit"))

	case OnlineStateHostWaiting:
		add(titleStyle.Render("ROOM CREATED"))
		add("")
		add("share this code with your opponent:")
		add("")
		add(codeStyle.Render(m.roomCode))
		add("")
		add("waiting for a player to join...")
		add("")
		add(dimStyle.Render("esc cancel"))

	case OnlineStateJoinEnterCode:
		add(titleStyle.Render("JOIN A ROOM"))
		add("")
		add(m.code.View())
		add("")
		add(dimStyle.Render("enter join  esc back"))

	case OnlineStateJoinWaiting:
		add(titleStyle.Render("JOINING"))
		add("")
		add(fmt.Sprintf("room %s", m.roomCode))
		add("")
		add(dimStyle.Render("esc cancel"))
	}

	if m.status != "" {
		add("")
		add(m.status)
	}
	if m.errMsg != "" {
		add("")
		add(errorStyle.Render(m.errMsg))
	}
	return strings.Join(lines, "\n")
}

// State returns the current step.
func (m OnlineModel) State() OnlineState {
	return m.state
}

// BackToMenu reports whether the player left the online flow.
func (m OnlineModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports whether the player quit.
func (m OnlineModel) IsQuitting() bool {
	return m.quitting
}

// Err returns the last error shown to the player.
func (m OnlineModel) Err() string {
	return m.errMsg
}

// RoomCode returns the current room code.
func (m OnlineModel) RoomCode() string {
	return m.roomCode
}

// Session returns the game session used for matches.
func (m OnlineModel) Session() *calcclimb.Session {
	return m.session
}

func describeRoomError(err error) string {
	var re multiplayer.RoomError
	if errors.As(err, &re) {
		return string(re)
	}
	return err.Error()
}

// onlineRunModel wraps an OnlineModel so leaving the lobby ends the program.
type onlineRunModel struct {
	OnlineModel
}

func (r onlineRunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := r.OnlineModel.Update(msg)
	if om, ok := next.(OnlineModel); ok {
		r.OnlineModel = om
	}
	if r.OnlineModel.BackToMenu() {
		return r, tea.Quit
	}
	return r, cmd
}

// RunOnline runs the online flow over relay in the current terminal and
// returns the last error shown to the player, if any.
func RunOnline(relay Relay, cfg core.RuntimeConfig, gameCfg config.CalcClimbConfig) (string, error) {
	p := tea.NewProgram(onlineRunModel{NewOnlineModel(relay, cfg, gameCfg)}, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if r, ok := final.(onlineRunModel); ok {
		return r.Err(), nil
	}
	return "", nil
}
