// Package forms implementa el estado de las pantallas de alta/edición de
// recursos: listado, panel abierto (crear/editar), campos tocados, validación,
// flag de carga y notificaciones.
package forms

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/bau-portal/internal/application/ports"
	"github.com/jhoicas/bau-portal/internal/application/validation"
	"github.com/jhoicas/bau-portal/internal/domain"
	"github.com/jhoicas/bau-portal/pkg/logger"
)

// State estado del panel.
type State int

const (
	StateIdle State = iota
	StateCreate
	StateEdit
)

func (s State) String() string {
	switch s {
	case StateCreate:
		return "create"
	case StateEdit:
		return "edit"
	default:
		return "idle"
	}
}

// Op operación sujeta a autorización.
type Op int

const (
	OpCreate Op = iota
	OpEdit
	OpDelete
	OpToggle
)

// DefaultRequestTimeout límite por petición si Options no indica otro.
const DefaultRequestTimeout = 30 * time.Second

// ErrorDuration duración de las notificaciones de error.
const ErrorDuration = 5 * time.Second

// MsgInvalidForm notificación cuando el formulario no valida.
const MsgInvalidForm = "Bitte füllen Sie alle erforderlichen Felder korrekt aus"

var (
	// ErrBusy hay una petición en curso.
	ErrBusy = errors.New("forms: operación en curso")
	// ErrNoPanel Submit sin panel abierto.
	ErrNoPanel = errors.New("forms: no hay formulario abierto")
	// ErrCancelled el usuario no confirmó.
	ErrCancelled = errors.New("forms: acción cancelada")
)

// Refusal error con el texto que debe verse en la notificación.
type Refusal struct {
	Msg string
	Err error
}

func (r *Refusal) Error() string { return r.Msg }
func (r *Refusal) Unwrap() error { return r.Err }

func refuse(err error, msg string) error { return &Refusal{Msg: msg, Err: err} }

// Messages textos de notificación de un recurso.
type Messages struct {
	LoadFailed    string
	Created       string
	CreateFailed  string
	Updated       string
	UpdateFailed  string
	Deleted       string
	DeleteFailed  string
	StatusFailed  string
	StatusChanged func(activated bool) string
	ConfirmDelete func(label string) string

	SuccessDuration time.Duration
}

// Binding adapta un recurso concreto al controlador genérico.
type Binding[R, F any] interface {
	List(ctx context.Context) ([]R, error)
	Create(ctx context.Context, form *F) error
	Update(ctx context.Context, rec *R, form *F) error
	ToggleStatus(ctx context.Context, rec *R) (activated bool, err error)
	Delete(ctx context.Context, rec *R) error

	Blank() F
	FromRecord(rec *R) F
	Label(rec *R) string
	Authorize(op Op, rec *R) error
	Messages() Messages
}

// Options dependencias de UI y límites del controlador.
type Options struct {
	Notifier       ports.Notifier
	Confirmer      ports.Confirmer // nil = nunca confirma
	Logger         *logger.Logger
	RequestTimeout time.Duration
}

// Controller estado de una pantalla de recurso. Seguro para uso concurrente;
// las llamadas de red se hacen sin sostener el mutex y loading evita la reentrada.
type Controller[R, F any] struct {
	b         Binding[R, F]
	msgs      Messages
	notifier  ports.Notifier
	confirmer ports.Confirmer
	validator *validation.Validator
	log       *logger.Logger
	timeout   time.Duration

	mu         sync.Mutex
	items      []R
	state      State
	editing    *R
	form       F
	touched    map[string]bool
	allTouched bool
	loading    bool
}

// New construye el controlador en estado idle con el formulario en blanco.
func New[R, F any](b Binding[R, F], opts Options) *Controller[R, F] {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	return &Controller[R, F]{
		b:         b,
		msgs:      b.Messages(),
		notifier:  opts.Notifier,
		confirmer: opts.Confirmer,
		validator: validation.New(),
		log:       opts.Logger.Component("forms"),
		timeout:   opts.RequestTimeout,
		form:      b.Blank(),
		touched:   map[string]bool{},
	}
}

// ─── Lectura de estado ────────────────────────────────────────────────────────

// Items copia del listado actual.
func (c *Controller[R, F]) Items() []R {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]R, len(c.items))
	copy(out, c.items)
	return out
}

// State estado del panel.
func (c *Controller[R, F]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Editing registro en edición; nil fuera de StateEdit.
func (c *Controller[R, F]) Editing() *R {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return nil
	}
	cp := *c.editing
	return &cp
}

// Loading indica si hay una petición en curso.
func (c *Controller[R, F]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Form valores del formulario para modificarlos en sitio. Las escrituras por este
// puntero no toman el mutex: no deben solaparse con Submit ni con otro Edit; desde
// varias goroutines usar Edit.
func (c *Controller[R, F]) Form() *F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &c.form
}

// Edit aplica fn al formulario bajo el mutex. Submit envía una copia tomada al
// empezar, así que una edición durante la petición no altera lo enviado.
func (c *Controller[R, F]) Edit(fn func(f *F)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.form)
}

// Touch marca un campo (nombre JSON) como tocado.
func (c *Controller[R, F]) Touch(field string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touched[field] = true
}

// Touched indica si el campo se tocó o si ya hubo un intento de envío.
func (c *Controller[R, F]) Touched(field string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.allTouched || c.touched[field]
}

// FieldErrors mensajes de validación de los campos tocados.
func (c *Controller[R, F]) FieldErrors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	errs, err := c.validator.Fields(c.form)
	if err != nil {
		c.log.Error().Err(err).Msg("validación del formulario")
		return map[string]string{}
	}
	if c.allTouched {
		return errs
	}
	for field := range errs {
		if !c.touched[field] {
			delete(errs, field)
		}
	}
	return errs
}

// Valid indica si el formulario completo valida, tocado o no.
func (c *Controller[R, F]) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	errs, err := c.validator.Fields(c.form)
	return err == nil && len(errs) == 0
}

// ─── Panel ────────────────────────────────────────────────────────────────────

// OpenCreate limpia el formulario a sus valores por defecto y abre el panel de alta.
func (c *Controller[R, F]) OpenCreate() error {
	if err := c.authorize(OpCreate, nil); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	c.state = StateCreate
	return nil
}

// OpenEdit carga rec en el formulario y abre el panel de edición.
func (c *Controller[R, F]) OpenEdit(rec R) error {
	if err := c.authorize(OpEdit, &rec); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	c.form = c.b.FromRecord(&rec)
	c.editing = &rec
	c.state = StateEdit
	return nil
}

// Close descarta el formulario y vuelve al listado.
func (c *Controller[R, F]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	c.state = StateIdle
}

func (c *Controller[R, F]) resetLocked() {
	c.form = c.b.Blank()
	c.editing = nil
	c.touched = map[string]bool{}
	c.allTouched = false
}

// ─── Operaciones ──────────────────────────────────────────────────────────────

// Load recarga el listado. Si falla, notifica y deja los items como estaban.
func (c *Controller[R, F]) Load(ctx context.Context) error {
	if !c.begin() {
		return ErrBusy
	}
	defer c.end()
	return c.reload(ctx)
}

// Submit valida y envía el formulario (alta o edición según el panel).
func (c *Controller[R, F]) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.state == StateIdle {
		c.mu.Unlock()
		return ErrNoPanel
	}
	c.allTouched = true
	errs, err := c.validator.Fields(c.form)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if len(errs) > 0 {
		c.mu.Unlock()
		c.notifyError(MsgInvalidForm)
		return fmt.Errorf("%w: %d campos inválidos", domain.ErrValidation, len(errs))
	}
	form := c.form
	editing := c.editing
	c.loading = true
	c.mu.Unlock()
	defer c.end()

	op, okMsg, failMsg := OpCreate, c.msgs.Created, c.msgs.CreateFailed
	if editing != nil {
		op, okMsg, failMsg = OpEdit, c.msgs.Updated, c.msgs.UpdateFailed
	}
	if err := c.authorize(op, editing); err != nil {
		return err
	}

	rctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if editing != nil {
		err = c.b.Update(rctx, editing, &form)
	} else {
		err = c.b.Create(rctx, &form)
	}
	if err != nil {
		c.fail(failMsg, err)
		return err
	}

	_ = c.reload(ctx)
	c.Close()
	c.notifySuccess(okMsg)
	return nil
}

// ToggleStatus alterna AKTIV↔INAKTIV y recarga el listado.
func (c *Controller[R, F]) ToggleStatus(ctx context.Context, rec R) error {
	if err := c.authorize(OpToggle, &rec); err != nil {
		return err
	}
	if !c.begin() {
		return ErrBusy
	}
	defer c.end()

	rctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	activated, err := c.b.ToggleStatus(rctx, &rec)
	if err != nil {
		c.fail(c.msgs.StatusFailed, err)
		return err
	}
	if c.msgs.StatusChanged != nil {
		c.notifySuccess(c.msgs.StatusChanged(activated))
	}
	_ = c.reload(ctx)
	return nil
}

// Delete pide confirmación y borra rec.
func (c *Controller[R, F]) Delete(ctx context.Context, rec R) error {
	if err := c.authorize(OpDelete, &rec); err != nil {
		return err
	}
	if c.Loading() {
		return ErrBusy
	}
	msg := c.b.Label(&rec)
	if c.msgs.ConfirmDelete != nil {
		msg = c.msgs.ConfirmDelete(msg)
	}
	if c.confirmer == nil || !c.confirmer.Confirm(ctx, msg) {
		return ErrCancelled
	}
	if !c.begin() {
		return ErrBusy
	}
	defer c.end()

	rctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.b.Delete(rctx, &rec); err != nil {
		c.fail(c.msgs.DeleteFailed, err)
		return err
	}
	c.notifySuccess(c.msgs.Deleted)
	_ = c.reload(ctx)
	return nil
}

// ─── Internos ─────────────────────────────────────────────────────────────────

func (c *Controller[R, F]) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return false
	}
	c.loading = true
	return true
}

func (c *Controller[R, F]) end() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

func (c *Controller[R, F]) reload(ctx context.Context) error {
	rctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	items, err := c.b.List(rctx)
	if err != nil {
		c.fail(c.msgs.LoadFailed, err)
		return err
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

func (c *Controller[R, F]) authorize(op Op, rec *R) error {
	err := c.b.Authorize(op, rec)
	if err == nil {
		return nil
	}
	c.fail("", err)
	return err
}

// fail notifica el error; un Refusal impone su propio texto.
func (c *Controller[R, F]) fail(msg string, err error) {
	var r *Refusal
	if errors.As(err, &r) {
		msg = r.Msg
	}
	c.log.Error().Err(err).Msg(msg)
	c.notifyError(msg)
}

func (c *Controller[R, F]) notifySuccess(msg string) {
	if c.notifier == nil || msg == "" {
		return
	}
	d := c.msgs.SuccessDuration
	if d <= 0 {
		d = ErrorDuration
	}
	c.notifier.Notify(ports.Notification{Kind: ports.NotifySuccess, Message: msg, Duration: d})
}

func (c *Controller[R, F]) notifyError(msg string) {
	if c.notifier == nil || msg == "" {
		return
	}
	c.notifier.Notify(ports.Notification{Kind: ports.NotifyError, Message: msg, Duration: ErrorDuration})
}
