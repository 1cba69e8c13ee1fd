// Package contactclient drives a contact form from the submitter's side:
// local validation, a single in-flight submission and the success/error
// notices shown afterwards.
package contactclient

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/looplab/fsm"

	"github.com/noah-isme/unagency-contact/pkg/contactform"
)

// State is a form lifecycle state.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

const (
	eventValidate = "validate"
	eventInvalid  = "invalid"
	eventSubmit   = "submit"
	eventSucceed  = "succeed"
	eventFail     = "fail"
	eventReset    = "reset"
)

// DefaultResetAfter is how long a success notice stays before the form idles.
const DefaultResetAfter = 5 * time.Second

// ErrSubmissionInFlight is returned by Submit while another submission runs.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// Options configures a Form.
type Options struct {
	Submitter Submitter
	// Language is a BCP 47 tag selecting notice and field texts.
	Language string
	// ResetAfter overrides DefaultResetAfter; negative disables the auto-reset.
	ResetAfter time.Duration
	// OnChange is called on every state entry. It runs synchronously and must
	// not call Submit.
	OnChange func(State)
}

// Snapshot is a copy of the form's visible state.
type Snapshot struct {
	State  State
	Values contactform.Submission
	Errors map[contactform.Field]string
	Notice string
}

// Form holds the values a user is editing and submits them at most once at a time.
type Form struct {
	submitter  Submitter
	validator  *contactform.Validator
	messages   Messages
	resetAfter time.Duration
	onChange   func(State)
	machine    *fsm.FSM

	mu         sync.Mutex
	values     contactform.Submission
	errors     map[contactform.Field]string
	notice     string
	resetTimer *time.Timer
	generation uint64
}

// NewForm builds an idle form.
func NewForm(opts Options) *Form {
	resetAfter := opts.ResetAfter
	if resetAfter == 0 {
		resetAfter = DefaultResetAfter
	}

	f := &Form{
		submitter:  opts.Submitter,
		validator:  contactform.NewValidator(),
		messages:   MessagesFor(opts.Language),
		resetAfter: resetAfter,
		onChange:   opts.OnChange,
		errors:     map[contactform.Field]string{},
	}

	f.machine = fsm.NewFSM(
		string(StateIdle),
		fsm.Events{
			{Name: eventValidate, Src: []string{string(StateIdle), string(StateSuccess), string(StateError)}, Dst: string(StateValidating)},
			{Name: eventInvalid, Src: []string{string(StateValidating)}, Dst: string(StateIdle)},
			{Name: eventSubmit, Src: []string{string(StateValidating)}, Dst: string(StateSubmitting)},
			{Name: eventSucceed, Src: []string{string(StateSubmitting)}, Dst: string(StateSuccess)},
			{Name: eventFail, Src: []string{string(StateSubmitting)}, Dst: string(StateError)},
			{Name: eventReset, Src: []string{string(StateSuccess), string(StateError)}, Dst: string(StateIdle)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				if f.onChange != nil {
					f.onChange(State(e.Dst))
				}
			},
		},
	)

	return f
}

// State returns the current lifecycle state.
func (f *Form) State() State {
	return State(f.machine.Current())
}

// Snapshot copies the values, field errors and notice.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := make(map[contactform.Field]string, len(f.errors))
	for field, msg := range f.errors {
		errs[field] = msg
	}
	return Snapshot{State: f.State(), Values: f.values, Errors: errs, Notice: f.notice}
}

// Set stores the raw value for a field and clears that field's error. A form
// showing a success or error notice goes back to idle.
func (f *Form) Set(field contactform.Field, value string) {
	f.mu.Lock()
	f.values = f.values.With(field, value)
	delete(f.errors, field)
	f.mu.Unlock()

	switch f.State() {
	case StateSuccess, StateError:
		f.reset()
	}
}

// Submit validates the current values and, when they pass, delivers them
// through the Submitter. It returns a *contactform.ValidationError without
// contacting the Submitter when any field fails, a *SubmitError or other
// delivery error when the Submitter fails, and ErrSubmissionInFlight when
// called during another submission.
func (f *Form) Submit(ctx context.Context) (Receipt, error) {
	if err := f.machine.Event(ctx, eventValidate); err != nil {
		var invalid fsm.InvalidEventError
		if errors.As(err, &invalid) {
			return Receipt{}, ErrSubmissionInFlight
		}
		return Receipt{}, err
	}

	f.mu.Lock()
	f.stopResetLocked()
	f.notice = ""
	submission, verr := f.validator.Check(f.values)
	if verr != nil {
		f.errors = make(map[contactform.Field]string, len(verr.Fields))
		for _, fe := range verr.Fields {
			f.errors[fe.Field] = f.messages.FieldError(fe.Field)
		}
	} else {
		f.errors = map[contactform.Field]string{}
	}
	f.mu.Unlock()

	if verr != nil {
		_ = f.machine.Event(ctx, eventInvalid)
		return Receipt{}, verr
	}

	if err := f.machine.Event(ctx, eventSubmit); err != nil {
		return Receipt{}, err
	}

	if f.submitter == nil {
		return Receipt{}, f.fail(ctx, &SubmitError{Err: errors.New("no submitter configured")})
	}

	receipt, err := f.submitter.Submit(ctx, submission)
	if err != nil {
		return Receipt{}, f.fail(ctx, err)
	}

	f.mu.Lock()
	f.values = contactform.Submission{}
	f.notice = f.messages.Success
	f.mu.Unlock()

	// Transition with a fresh context so a caller cancelling after delivery
	// cannot leave the form stuck in submitting.
	_ = f.machine.Event(context.Background(), eventSucceed)
	f.scheduleReset()

	return receipt, nil
}

func (f *Form) fail(_ context.Context, err error) error {
	notice := f.messages.Failure
	var submitErr *SubmitError
	if errors.As(err, &submitErr) && submitErr.Message != "" {
		notice = submitErr.Message
	}

	f.mu.Lock()
	f.notice = notice
	f.mu.Unlock()

	_ = f.machine.Event(context.Background(), eventFail)
	return err
}

func (f *Form) reset() {
	f.mu.Lock()
	f.stopResetLocked()
	f.notice = ""
	f.mu.Unlock()

	_ = f.machine.Event(context.Background(), eventReset)
}

func (f *Form) scheduleReset() {
	if f.resetAfter < 0 {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.stopResetLocked()
	generation := f.generation
	f.resetTimer = time.AfterFunc(f.resetAfter, func() {
		f.mu.Lock()
		if f.generation != generation {
			f.mu.Unlock()
			return
		}
		f.resetTimer = nil
		f.notice = ""
		f.mu.Unlock()

		if f.State() == StateSuccess {
			_ = f.machine.Event(context.Background(), eventReset)
		}
	})
}

// stopResetLocked cancels a pending auto-reset. Callers hold f.mu.
func (f *Form) stopResetLocked() {
	f.generation++
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
}
