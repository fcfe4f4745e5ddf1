package forms_test

import (
	"context"
	"sync"

	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/application/ports"
	"github.com/jhoicas/bau-portal/internal/domain/entity"
)

// ─── Identidad ────────────────────────────────────────────────────────────────

type staticIdentity struct{ id *entity.Identity }

func (s staticIdentity) EffectiveIdentity() *entity.Identity { return s.id }

var (
	adminID   = &entity.Identity{ID: "a1", Email: "admin@bau.ch", Role: entity.RoleAdmin}
	betriebID = &entity.Identity{ID: "u1", Email: "holz@betrieb.ch", Role: entity.RoleBetrieb, BetriebID: "b-1"}
)

// ─── UI ───────────────────────────────────────────────────────────────────────

type recNotifier struct {
	mu  sync.Mutex
	got []ports.Notification
}

func (n *recNotifier) Notify(x ports.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, x)
}

func (n *recNotifier) last() ports.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.got) == 0 {
		return ports.Notification{}
	}
	return n.got[len(n.got)-1]
}

// hookNotifier ejecuta on en cada notificación, para inspeccionar el estado en ese momento.
type hookNotifier struct {
	on func(ports.Notification)
}

func (n hookNotifier) Notify(x ports.Notification) { n.on(x) }

type fixedConfirmer struct {
	answer bool
	asked  []string
}

func (c *fixedConfirmer) Confirm(_ context.Context, msg string) bool {
	c.asked = append(c.asked, msg)
	return c.answer
}

// ─── APIs ─────────────────────────────────────────────────────────────────────

type fakeBedarfAPI struct {
	items     []dto.Bedarf
	listErr   error
	createErr error
	updateErr error
	statusErr error
	deleteErr error
	block     chan struct{} // si no es nil, Create espera aquí o a ctx
	lists     int
	byBetrieb string
	created   []dto.BedarfCreateRequest
	updated   map[string]dto.BedarfUpdateRequest
	statuses  map[string]entity.BedarfStatus
	deleted   []string
}

func newFakeBedarfAPI(items ...dto.Bedarf) *fakeBedarfAPI {
	return &fakeBedarfAPI{
		items:    items,
		updated:  map[string]dto.BedarfUpdateRequest{},
		statuses: map[string]entity.BedarfStatus{},
	}
}

func (f *fakeBedarfAPI) page() *dto.Page[dto.Bedarf] {
	p := dto.NewPage(f.items, 0, 20, int64(len(f.items)))
	return &p
}

func (f *fakeBedarfAPI) List(context.Context, *dto.BedarfSearchParams) (*dto.Page[dto.Bedarf], error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.page(), nil
}

func (f *fakeBedarfAPI) ListByBetrieb(_ context.Context, id string, _ *dto.BedarfSearchParams) (*dto.Page[dto.Bedarf], error) {
	f.lists++
	f.byBetrieb = id
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.page(), nil
}

func (f *fakeBedarfAPI) Get(_ context.Context, id string) (*dto.Bedarf, error) {
	for _, b := range f.items {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeBedarfAPI) Create(ctx context.Context, in dto.BedarfCreateRequest) (*dto.Bedarf, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	b := dto.Bedarf{ID: "neu", BetriebID: in.BetriebID, Titel: in.Titel, Status: entity.BedarfAktiv}
	f.items = append(f.items, b)
	return &b, nil
}

func (f *fakeBedarfAPI) Update(_ context.Context, id string, in dto.BedarfUpdateRequest) (*dto.Bedarf, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated[id] = in
	return &dto.Bedarf{ID: id, Titel: in.Titel}, nil
}

func (f *fakeBedarfAPI) UpdateStatus(_ context.Context, id string, in dto.BedarfStatusUpdate) (*dto.Bedarf, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	f.statuses[id] = in.Status
	return &dto.Bedarf{ID: id, Status: in.Status}, nil
}

func (f *fakeBedarfAPI) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeBetriebAPI struct {
	items     []dto.Betrieb
	listErr   error
	createErr error
	created   []dto.BetriebCreateRequest
	updated   map[string]dto.BetriebUpdateRequest
	statuses  map[string]entity.BetriebStatus
	deleted   []string
}

func newFakeBetriebAPI(items ...dto.Betrieb) *fakeBetriebAPI {
	return &fakeBetriebAPI{
		items:    items,
		updated:  map[string]dto.BetriebUpdateRequest{},
		statuses: map[string]entity.BetriebStatus{},
	}
}

func (f *fakeBetriebAPI) List(context.Context, *dto.BetriebSearchParams) (*dto.Page[dto.Betrieb], error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	p := dto.NewPage(f.items, 0, 20, int64(len(f.items)))
	return &p, nil
}

func (f *fakeBetriebAPI) Get(context.Context, string) (*dto.Betrieb, error) { return nil, nil }

func (f *fakeBetriebAPI) Create(_ context.Context, in dto.BetriebCreateRequest) (*dto.Betrieb, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	return &dto.Betrieb{ID: "neu", Name: in.Name}, nil
}

func (f *fakeBetriebAPI) Update(_ context.Context, id string, in dto.BetriebUpdateRequest) (*dto.Betrieb, error) {
	f.updated[id] = in
	return &dto.Betrieb{ID: id}, nil
}

func (f *fakeBetriebAPI) UpdateStatus(_ context.Context, id string, in dto.BetriebStatusUpdate) (*dto.Betrieb, error) {
	f.statuses[id] = in.Status
	return &dto.Betrieb{ID: id, Status: in.Status}, nil
}

func (f *fakeBetriebAPI) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}
