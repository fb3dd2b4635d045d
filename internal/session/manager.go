// Package session owns the mailbox identity: restoring it from durable
// storage and provisioning a new one against the remote API.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nhle/tempinbox/internal/event"
	"github.com/nhle/tempinbox/internal/mailtm"
	"github.com/nhle/tempinbox/internal/model"
)

// Provisioner is the subset of the mail API used to create a mailbox.
type Provisioner interface {
	Domains(ctx context.Context) ([]mailtm.Domain, error)
	CreateAccount(ctx context.Context, address, password string) (*mailtm.Account, error)
	Token(ctx context.Context, address, password string) (*mailtm.Token, error)
}

// Refresher is notified right after a new session becomes active.
type Refresher interface {
	FetchMessages(ctx context.Context)
}

// Manager establishes and persists exactly one mailbox identity at a time.
type Manager struct {
	api       Provisioner
	store     *Store
	refresher Refresher
	sink      event.Sink
	log       zerolog.Logger

	localPart func() string
}

// NewManager wires a manager. refresher may be nil.
func NewManager(
	api Provisioner,
	store *Store,
	refresher Refresher,
	sink event.Sink,
	log zerolog.Logger,
) *Manager {
	if sink == nil {
		sink = event.Discard
	}
	return &Manager{
		api:       api,
		store:     store,
		refresher: refresher,
		sink:      sink,
		log:       log,
		localPart: newLocalPart,
	}
}

// RestoreOrCreate returns the persisted session when it is complete,
// without touching the network. Anything else, including a storage read
// failure, falls through to CreateSession.
func (m *Manager) RestoreOrCreate(ctx context.Context) (model.Session, error) {
	sess, ok, err := m.store.Restore(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("reading persisted session; provisioning a new one")
	}
	if ok {
		m.log.Info().Str("address", sess.Address).Msg("restored session")
		m.sink.Send(event.SessionReadyMsg{Session: sess})
		return sess, nil
	}
	return m.CreateSession(ctx)
}

// CreateSession provisions a fresh mailbox: domain lookup, account
// creation, token issuance, then an atomic overwrite of the stored
// session. Each step depends on the previous one succeeding. On failure
// nothing is persisted and the error status is emitted; there is no
// automatic retry.
func (m *Manager) CreateSession(ctx context.Context) (model.Session, error) {
	m.log.Info().Msg("generating new address")
	m.sink.Send(event.SessionStatusMsg{Status: model.StatusGenerating})

	domains, err := m.api.Domains(ctx)
	if err != nil {
		return model.Session{}, m.fail(StepDomains, err)
	}
	if len(domains) == 0 || domains[0].Domain == "" {
		return model.Session{}, m.fail(StepDomains, ErrNoDomains)
	}

	address := m.localPart() + "@" + domains[0].Domain

	acct, err := m.api.CreateAccount(ctx, address, Password)
	if err != nil {
		return model.Session{}, m.fail(StepAccount, err)
	}
	if acct.ID == "" {
		return model.Session{}, m.fail(StepAccount, errors.New("account response has no id"))
	}

	tok, err := m.api.Token(ctx, address, Password)
	if err != nil {
		return model.Session{}, m.fail(StepToken, err)
	}
	if tok.Token == "" {
		return model.Session{}, m.fail(StepToken, errors.New("token response is empty"))
	}

	sess := model.Session{
		Address:   address,
		AuthToken: tok.Token,
		AccountID: acct.ID,
	}
	if err := m.store.Replace(ctx, sess); err != nil {
		return model.Session{}, m.fail(StepPersist, err)
	}

	m.log.Info().Str("address", address).Str("account_id", acct.ID).Msg("session created")
	m.sink.Send(event.SessionReadyMsg{Session: sess, Fresh: true})

	if m.refresher != nil {
		m.refresher.FetchMessages(ctx)
	}

	return sess, nil
}

func (m *Manager) fail(step string, err error) error {
	perr := &ProvisioningError{Step: step, Err: err}
	m.log.Error().Err(err).Str("step", step).Msg("provisioning failed")
	m.sink.Send(event.SessionStatusMsg{
		Status: model.StatusError,
		Err:    fmt.Errorf("create session: %w", perr),
	})
	return perr
}
