// Package orders owns the persisted order log. Reads go straight to the
// store; every mutation is funneled through a single writer goroutine so
// asynchronous attach completions are applied one full
// load-modify-save cycle at a time, whatever order they finish in.
package orders

import (
	"context"
	"errors"
	"time"

	"kedai/models"
	"kedai/store"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrImageIndex    = errors.New("image index out of range")
	ErrClosed        = errors.New("order service is closed")
)

type op struct {
	apply func([]models.Order) ([]models.Order, error)
	reply chan error
}

// Service is the order log. New orders are prepended (most recent first);
// records failing shape validation are silently dropped on every load.
type Service struct {
	store store.Store
	ops   chan op
	quit  chan struct{}
	done  chan struct{}
}

func NewService(st store.Store) *Service {
	s := &Service{
		store: st,
		ops:   make(chan op),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go s.run()
	return s
}

// Close stops the writer goroutine and waits for it to exit. Later mutations
// error with ErrClosed.
func (s *Service) Close() {
	close(s.quit)
	<-s.done
}

func (s *Service) run() {
	defer close(s.done)
	for {
		select {
		case o := <-s.ops:
			o.reply <- s.applyOne(o.apply)
		case <-s.quit:
			return
		}
	}
}

func (s *Service) applyOne(apply func([]models.Order) ([]models.Order, error)) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	current, err := s.load(ctx)
	if err != nil {
		return err
	}
	updated, err := apply(current)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, store.OrdersCollection, updated)
}

// mutate hands an operation to the writer and waits for its result.
func (s *Service) mutate(ctx context.Context, apply func([]models.Order) ([]models.Order, error)) error {
	o := op{apply: apply, reply: make(chan error, 1)}
	select {
	case s.ops <- o:
	case <-s.quit:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-o.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) load(ctx context.Context) ([]models.Order, error) {
	var all []models.Order
	err := s.store.Load(ctx, store.OrdersCollection, &all)
	if err == store.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	valid := all[:0]
	for _, o := range all {
		if o.Valid() {
			valid = append(valid, o)
		}
	}
	return valid, nil
}

// Orders returns the visible order log, most recent first.
func (s *Service) Orders(ctx context.Context) ([]models.Order, error) {
	return s.load(ctx)
}

// Get returns a single order by id.
func (s *Service) Get(ctx context.Context, id string) (models.Order, error) {
	all, err := s.load(ctx)
	if err != nil {
		return models.Order{}, err
	}
	for _, o := range all {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

// Place prepends a freshly built order to the log. The write completes
// before checkout reports success, so a crash after Place never loses the
// order.
func (s *Service) Place(ctx context.Context, order models.Order) error {
	return s.mutate(ctx, func(current []models.Order) ([]models.Order, error) {
		return append([]models.Order{order}, current...), nil
	})
}

// Attach appends an image reference to the matching order, creating the
// attachment list on first use.
func (s *Service) Attach(ctx context.Context, orderID, ref string) error {
	return s.mutate(ctx, func(current []models.Order) ([]models.Order, error) {
		for i := range current {
			if current[i].ID == orderID {
				current[i].AttachedImages = append(current[i].AttachedImages, ref)
				return current, nil
			}
		}
		return nil, ErrOrderNotFound
	})
}

// RemoveImage deletes the attachment at the given position. An emptied list
// is cleared to absent rather than kept as an empty list.
func (s *Service) RemoveImage(ctx context.Context, orderID string, index int) error {
	return s.mutate(ctx, func(current []models.Order) ([]models.Order, error) {
		for i := range current {
			if current[i].ID != orderID {
				continue
			}
			imgs := current[i].AttachedImages
			if index < 0 || index >= len(imgs) {
				return nil, ErrImageIndex
			}
			imgs = append(imgs[:index], imgs[index+1:]...)
			if len(imgs) == 0 {
				imgs = nil
			}
			current[i].AttachedImages = imgs
			return current, nil
		}
		return nil, ErrOrderNotFound
	})
}
