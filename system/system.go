// Package system composes every control-core component into the boot
// sequence and control loop (spec §4.9, §4.10). It is the Go rendering
// of the firmware's "one long function with many locals" (design note
// in §9): a System value owns one instance of each component, the UART
// ISR becomes a goroutine publishing into the ring buffer, and the
// control loop is a second goroutine draining it — the two communicate
// only through ringbuf.Buffer's atomic counters, exactly as a real ISR
// and cooperative loop would through volatile state.
package system

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/urathe/AlarmDial/at"
	"github.com/urathe/AlarmDial/config"
	"github.com/urathe/AlarmDial/dialogue"
	"github.com/urathe/AlarmDial/hal"
	"github.com/urathe/AlarmDial/inputs"
	"github.com/urathe/AlarmDial/ringbuf"
	"github.com/urathe/AlarmDial/schedule"
	"github.com/urathe/AlarmDial/smscmd"
	"github.com/urathe/AlarmDial/stage"
	"github.com/urathe/AlarmDial/watchdog"
)

// LoopInterval is the control loop's fixed per-iteration sleep (spec
// §4.10: "10 ms sleep per iteration").
const LoopInterval = 10 * time.Millisecond

// ResetPin is the dedicated digital input for password reset (spec
// §4.9, §6: "one additional digital input for password reset").
const ResetPin = -1

// CMGSPromptDelay is the pause between writing the AT+CMGS command and
// typing the SMS body (spec's end-to-end scenario: "waits 500 ms"
// before the body is sent, giving the modem time to echo its '>'
// prompt).
const CMGSPromptDelay = 500 * time.Millisecond

// modemBootInitScript is the fixed sequence of commands the boot
// sequence issues after the 30 s modem-boot sleep (spec §4.9, §6):
// echo off, DTR ignore, verbose, event policy, text-mode SMS, preferred
// network mode, storage on SIM + clear, storage on ME + clear.
var modemBootInitScript = []string{
	"ATE0",
	"AT&D0",
	"ATV1",
	"AT+CGEREP=0,0;+CVHU=0;+CLIP=0;+CLCC=1",
	`AT+CNMP=2;+CSCS="IRA";+CMGF=1;+CNMI=2,1`,
	`AT+CPMS="SM","SM","SM"`,
	"AT+CMGD=0,4",
	`AT+CPMS="ME","ME","ME"`,
	"AT+CMGD=0,4",
}

// Deps bundles every external collaborator System needs wired in at
// boot — the out-of-scope hardware named only as interfaces (spec §1).
type Deps struct {
	Dialer hal.Dialer
	Pins   hal.GPIOInput
	LED    hal.LED
	Timer  watchdog.Timer
	CS     hal.CriticalSection
	Store  config.Store

	// Validator overrides the SMS command parser's number validator
	// (Open Question #1); nil selects smscmd.AcceptAllValidator.
	Validator smscmd.NumberValidator
	// OfflinePolicy overrides the modem-health reboot policy (Open
	// Question #2); nil selects schedule.ImmediatePolicy.
	OfflinePolicy schedule.OfflinePolicy

	Logger *slog.Logger

	// BootSleep is slept once after power-cycling the modem, before the
	// init script runs (spec §4.9: "sleep 30 s for modem boot"). Exposed
	// so tests and hostsim runs need not actually wait 30 real seconds.
	BootSleep time.Duration
}

// System is the composed control core. All of its fields are unexported;
// apart from the ring buffer, which the UART reader goroutine fills,
// they are accessed only from the control loop goroutine, matching the
// spec's single-writer discipline for everything but the ring buffer.
type System struct {
	deps Deps
	log  *slog.Logger

	transport hal.Transport
	ring      *ringbuf.Buffer

	dlg     *dialogue.State
	seq     stage.Machine
	scanner *inputs.Scanner
	parser  *smscmd.Parser
	sched   *schedule.Scheduler
	wd      *watchdog.Controller
	reset   watchdog.ResetInput

	rec         config.Record
	configDirty bool
	lastScan    time.Time
	lastBlink   time.Time

	// offline tracks the OfflinePolicy instance this System owns; kept
	// separate from deps so the zero value of Deps still works.
	offline schedule.OfflinePolicy
}

// New constructs a System from deps, applying every documented default
// for an unset optional field.
func New(deps Deps) *System {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.BootSleep == 0 {
		deps.BootSleep = 30 * time.Second
	}
	validator := deps.Validator
	if validator == nil {
		validator = smscmd.AcceptAllValidator{}
	}
	offline := deps.OfflinePolicy
	if offline == nil {
		offline = schedule.ImmediatePolicy{}
	}

	return &System{
		deps:    deps,
		log:     deps.Logger,
		ring:    ringbuf.New(ringbuf.DefaultCapacity),
		dlg:     dialogue.New(),
		scanner: inputs.NewScanner(),
		parser:  &smscmd.Parser{Validator: validator},
		sched:   schedule.New(time.Now()),
		offline: offline,
	}
}

// Run executes the full boot sequence and then the control loop until
// ctx is canceled or an unrecoverable error occurs. It mirrors spec
// §4.9's boot sequence followed by §4.10's control loop, expressed as
// an errgroup supervising the UART reader goroutine and the loop
// goroutine.
func (s *System) Run(ctx context.Context) error {
	rec, dirty, err := config.Load(s.deps.Store)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	s.rec = rec
	s.configDirty = dirty

	if err := s.bootModem(ctx); err != nil {
		return fmt.Errorf("boot modem: %w", err)
	}

	s.wd = watchdog.New(s.deps.Timer)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.readLoop(ctx) })
	g.Go(func() error { return s.controlLoop(ctx) })
	g.Go(func() error {
		// The transport's Read has no context of its own (a real serial
		// port blocks until bytes arrive, same as the modem's UART
		// would); closing it on shutdown is what unblocks readLoop.
		<-ctx.Done()
		_ = s.transport.Close()
		return nil
	})
	return g.Wait()
}

// bootModem power-cycles the modem, waits for it to come back up, and
// runs the fixed init script (spec §4.9: "power-cycle the modem via
// AT+CRESET ... no interrupt handler yet; simple blocking line reads
// ... sleep 30 s ... initialise modem with a fixed script"). This all
// happens before the ring buffer reader goroutine is installed, exactly
// as the spec's boot sequence installs the ISR only after init.
func (s *System) bootModem(ctx context.Context) error {
	transport, err := s.deps.Dialer.Dial(ctx)
	if err != nil {
		return fmt.Errorf("dial modem transport: %w", err)
	}
	s.transport = transport

	if err := writeCommand(transport, "AT+CRESET"); err != nil {
		return fmt.Errorf("send AT+CRESET: %w", err)
	}

	select {
	case <-time.After(s.deps.BootSleep):
	case <-ctx.Done():
		return ctx.Err()
	}

	reader := bufio.NewReader(transport)
	for _, cmd := range modemBootInitScript {
		if err := writeCommand(transport, cmd); err != nil {
			return fmt.Errorf("send %q: %w", cmd, err)
		}
		if err := blockingExpectOK(reader); err != nil {
			return fmt.Errorf("init step %q: %w", cmd, err)
		}
	}

	s.log.Info("modem initialised")
	return nil
}

// blockingExpectOK performs the blocking, per-character-timeout-free
// line reads the boot sequence uses before the UART ISR is installed
// (spec §4.9), discarding lines until OK or ERROR.
func blockingExpectOK(r *bufio.Reader) error {
	for {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return err
		}
		switch at.StripTerminators([]byte(line)) {
		case "OK":
			return nil
		case "ERROR":
			return fmt.Errorf("modem replied ERROR")
		}
	}
}

func writeCommand(w io.Writer, cmd string) error {
	_, err := io.WriteString(w, cmd+"\r")
	return err
}

// readLoop is the Go rendering of the UART RX ISR (spec §4.1): for
// every byte read off the transport, Push it into the ring buffer. It
// is the buffer's only writer.
func (s *System) readLoop(ctx context.Context) error {
	buf := make([]byte, 256)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		n, err := s.transport.Read(buf)
		for i := 0; i < n; i++ {
			if s.deps.CS != nil {
				s.deps.CS.Enter()
			}
			s.ring.Push(buf[i])
			if s.deps.CS != nil {
				s.deps.CS.Exit()
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read modem transport: %w", err)
		}
	}
}

// controlLoop is the single cooperative loop of spec §4.10, driven by a
// fixed LoopInterval ticker rather than a literal busy-sleep, which is
// the idiomatic Go rendering of the same "10 ms sleep per iteration"
// contract.
func (s *System) controlLoop(ctx context.Context) error {
	ticker := time.NewTicker(LoopInterval)
	defer ticker.Stop()

	lineBuf := make([]byte, at.MaxLineLength+2)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		now := time.Now()
		s.wd.FeedOnce()

		if n, ok := s.ring.PopLine(lineBuf); ok {
			line := at.StripTerminators(lineBuf[:n])
			kind, raw := at.Classify(line)
			s.handleLine(kind, raw, now)
		}

		// busy aggregates both halves of spec §3's "a request is in
		// flight" predicate: an explicit AT reply awaited via dialogue,
		// and a multi-stage action mid-script but between round-trips
		// (e.g. staged but not yet sent, or sent and awaiting +CMGS)
		// where nothing is currently registered with dlg.Await.
		busy := s.dlg.Busy() || s.seq.Pending()

		for _, k := range s.dlg.TimedOut(now) {
			s.dlg.Clear(k)
			if k == at.CMGR {
				s.seq.Abandon()
			}
		}

		if !busy {
			s.checkSchedule(now)
			if err := s.scanInputs(); err != nil {
				s.log.Error("scan inputs", "error", err)
			}
			s.checkResetInput(now)
		}

		s.blinkLED(now)

		if s.configDirty && !busy {
			s.persistConfig()
		}
	}
}

// handleLine reacts to a single classified line arriving, advancing the
// dialogue state and the multi-stage sequencer (spec §4.2 through §4.4).
func (s *System) handleLine(kind at.Kind, raw string, now time.Time) {
	switch kind {
	case at.None:
		return

	case at.OK:
		s.dlg.Clear(at.OK)
		if result, handled := s.seq.OnOK(); handled {
			if result.NextCommand != "" {
				s.dispatch(result.NextCommand, at.CSQ, now)
			}
			if result.SendReply {
				s.sendSMS(s.seq.Reply(), now)
			}
			if result.Done {
				s.log.Info("multi-stage action completed")
			}
		}

	case at.ERROR:
		s.dlg.Clear(at.ERROR)

	case at.CSQ:
		s.dlg.Clear(at.CSQ)
		s.seq.OnCSQ(stage.ParseCSQValue(raw))

	case at.CMGS:
		s.dlg.Clear(at.CMGS)
		s.seq.OnCMGS()

	case at.CMTI:
		s.dlg.Clear(at.CMTI)
		if idx, ok := at.CMTIIndex(raw); ok {
			s.dispatch(fmt.Sprintf("+CMGR=%d", idx), at.CMGR, now)
		}

	case at.CMGR:
		// Header only; CMGR stays awaited until the body line (Payload)
		// actually arrives and is consumed below, so the two-line
		// response isn't torn apart by an intervening clear.

	case at.Payload:
		if s.dlg.Awaiting(at.CMGR) || s.seq.Kind() != stage.KindNone {
			s.dlg.Clear(at.CMGR)
			s.handleSMSBody(raw)
		}

	case at.CPSI:
		s.dlg.Clear(at.CPSI)
		s.handleCPSI(raw)

	case at.CLCC:
		// An inbound call indication; the only action this firmware takes
		// on it is to hang up (spec GLOSSARY: "used here only as a signal
		// of an inbound call to be hung up").
		s.dlg.Clear(at.CLCC)
		s.dispatch("+CHUP", at.OK, now)

	case at.CREG, at.CPMS, at.CMGD, at.UnknownPlus:
		s.dlg.Clear(kind)
	}
}

// handleSMSBody runs the SMS command parser once a CMGR body has
// arrived (spec §4.6), starting whichever multi-stage script the
// command requires (spec §4.4 table).
func (s *System) handleSMSBody(body string) {
	result := s.parser.Parse(body, &s.rec)
	if result.ConfigDirty {
		s.configDirty = true
	}

	switch result.Action {
	case stage.KindNone:
		// password prefix didn't match; silently discard (spec §4.6).
	case stage.KindSignalRequest:
		s.seq.StartSignalRequest()
	default:
		s.seq.StartReply(result.Action, result.Reply)
	}
}

// handleCPSI reacts to a +CPSI probe reply (spec §4.8, §4.9): "Online"
// starts the STATUS multi-stage action; anything else is treated as an
// offline diagnosis subject to the configured OfflinePolicy.
func (s *System) handleCPSI(line string) {
	if strings.Contains(line, "Online") {
		s.offline.Online()
		s.seq.StartStatus("Modem check: " + stage.ParseCPSIBody(line))
		return
	}

	if s.offline.Offline() {
		s.log.Warn("modem diagnosed offline, forcing reboot", "cpsi", line)
		s.wd.ForceReboot()
	}
}

// checkSchedule fires at most one periodic duty per call, the one whose
// cadence has elapsed (spec §4.8). Only called while !busy, but a
// single call can still find more than one cadence due at once (all
// three realign at boot, and again every time CPSIInterval's 4-week
// period coincides with the shorter ones), so dispatching must stop
// after the first: each duty issues exactly one AT command and relies
// on handleLine to react to the eventual reply before anything else is
// allowed to dispatch.
func (s *System) checkSchedule(now time.Time) {
	if s.sched.ModemHealth.Due(now) {
		s.sched.ModemHealth.Fired(now)
		s.dispatch("+CPSI?", at.CPSI, now)
		return
	}
	if s.sched.NetworkProbe.Due(now) {
		s.sched.NetworkProbe.Fired(now)
		s.dispatch("+CREG?", at.CREG, now)
		return
	}
	if s.sched.SMSCleanup.Due(now) {
		s.sched.SMSCleanup.Fired(now)
		s.dispatch("+CMGD=0,4", at.CMGD, now)
	}
}

// scanInputs polls every contact input and sends a notification SMS on
// any transition whose input has notifications enabled (spec §4.5).
// Only the first transition each tick is actioned, since sending an SMS
// takes the dialogue; the rest are picked up on a later tick.
func (s *System) scanInputs() error {
	if time.Since(s.lastScan) < inputs.ScanInterval {
		return nil
	}
	s.lastScan = time.Now()

	transitions, err := s.scanner.Scan(s.deps.Pins)
	if err != nil {
		return err
	}
	for _, t := range transitions {
		per := s.rec.Inputs[t.Pin]
		if !per.NotifyEnabled {
			continue
		}
		s.sendSMS(inputs.MessageFor(t, per), s.lastScan)
		return nil
	}
	return nil
}

// checkResetInput polls the dedicated reset-to-defaults input (spec
// §4.9): on a qualifying press it resets the password, marks config
// dirty, and sends a confirmation SMS.
func (s *System) checkResetInput(now time.Time) {
	if s.deps.Pins == nil {
		return
	}
	high, err := s.deps.Pins.Read(ResetPin)
	if err != nil {
		s.log.Error("read reset input", "error", err)
		return
	}
	if s.reset.Observe(!high, now) {
		s.rec.Password = config.DefaultPassword
		s.configDirty = true
		s.sendSMS("Password reset to default", now)
	}
}

// blinkLED toggles the heartbeat LED at 1 Hz (spec §4.10, §6).
func (s *System) blinkLED(now time.Time) {
	if s.deps.LED == nil {
		return
	}
	if now.Sub(s.lastBlink) >= time.Second {
		s.lastBlink = now
		s.deps.LED.Toggle()
	}
}

// persistConfig writes the current configuration under the flash
// critical section (spec §4.7: "disables all interrupts, erases the
// sector, programs the record, re-enables interrupts"). On this
// module's Go rendering, Enter/Exit exclude the UART reader goroutine
// for the duration of the write (package hal).
func (s *System) persistConfig() {
	if s.deps.CS != nil {
		s.deps.CS.Enter()
		defer s.deps.CS.Exit()
	}
	if err := config.Persist(s.deps.Store, s.rec); err != nil {
		s.log.Error("persist configuration", "error", err)
		return
	}
	s.configDirty = false
}

// dispatch writes a bare AT command (no "AT" prefix, no CR) to the
// modem and registers the dialogue's expectation of expected, mirroring
// the spec §4.3 "dispatch(command, expected_kind)" contract as two
// explicit steps: the transport write and the state registration. Every
// command line is itself terminated by the modem's own trailing OK, so
// expected and OK are both awaited; busy stays true until both have
// been cleared, not just the data kind.
func (s *System) dispatch(command string, expected at.Kind, now time.Time) {
	if err := writeCommand(s.transport, "AT"+command); err != nil {
		s.log.Error("dispatch AT command", "command", command, "error", err)
		return
	}
	s.dlg.Await(expected, now)
	if expected != at.OK {
		s.dlg.Await(at.OK, now)
	}
}

// sendSMS issues AT+CMGS for the configured destination, sleeps
// CMGSPromptDelay to give the modem time to emit its '>' prompt (the
// prompt itself is not read), types the body followed by Ctrl-Z, and
// registers the dialogue's expectation of +CMGS (spec §6, §4.4,
// end-to-end scenario: "waits 500 ms" between the command and body).
func (s *System) sendSMS(body string, now time.Time) {
	cmd := fmt.Sprintf(`AT+CMGS="%s"`, s.rec.DestinationNumber)
	if err := writeCommand(s.transport, cmd); err != nil {
		s.log.Error("send CMGS command", "error", err)
		return
	}
	time.Sleep(CMGSPromptDelay)
	if err := writeCommand(s.transport, body+at.CtrlZ); err != nil {
		s.log.Error("send SMS body", "error", err)
		return
	}
	s.dlg.Await(at.CMGS, now)
	s.dlg.Await(at.OK, now)
}
