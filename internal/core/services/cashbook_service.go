package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/innlodge/lodgebook_app/internal/apperrors"
	"github.com/innlodge/lodgebook_app/internal/core/domain"
	portsrepo "github.com/innlodge/lodgebook_app/internal/core/ports/repositories"
	portssvc "github.com/innlodge/lodgebook_app/internal/core/ports/services"
	"github.com/innlodge/lodgebook_app/internal/dto"
	"github.com/innlodge/lodgebook_app/internal/utils/accounting"
	"github.com/innlodge/lodgebook_app/internal/utils/datewindow"
	"github.com/innlodge/lodgebook_app/internal/utils/exporting"
)

// sessionKey identifies one user's cashbook on one property.
type sessionKey struct {
	userID     string
	propertyID string
}

// cashbookSession is the live state behind one cashbook view. It is only
// ever touched under the service mutex; the refresh queries run outside the
// lock and re-check the generation before applying their results.
type cashbookSession struct {
	windowMode domain.WindowMode
	anchorDate time.Time
	rangeFrom  time.Time
	rangeTo    time.Time

	entries     []domain.LedgerEntry
	roomNames   map[string]string
	dayTotals   domain.AggregateTotals
	monthTotals domain.AggregateTotals
	rangeTotals domain.AggregateTotals
	failures    []domain.SlotFailure

	generation uint64
	refreshing bool
}

// newCashbookSession opens a session on today's date in TODAY mode.
func newCashbookSession(now time.Time) *cashbookSession {
	anchor := datewindow.StartOfDay(now)
	return &cashbookSession{
		windowMode: domain.WindowToday,
		anchorDate: anchor,
		rangeFrom:  anchor,
		rangeTo:    anchor,
		entries:    []domain.LedgerEntry{},
		roomNames:  map[string]string{},
	}
}

// snapshot copies the session state for handing out. The entries slice is
// shared; refreshes replace it wholesale and never mutate it in place.
func (sess *cashbookSession) snapshot(propertyID string) domain.CashbookSnapshot {
	return domain.CashbookSnapshot{
		PropertyID:  propertyID,
		WindowMode:  sess.windowMode,
		AnchorDate:  sess.anchorDate,
		RangeFrom:   sess.rangeFrom,
		RangeTo:     sess.rangeTo,
		Window:      datewindow.Resolve(sess.windowMode, sess.anchorDate, sess.rangeFrom, sess.rangeTo),
		Entries:     sess.entries,
		RoomNames:   sess.roomNames,
		DayTotals:   sess.dayTotals,
		MonthTotals: sess.monthTotals,
		RangeTotals: sess.rangeTotals,
		Failures:    sess.failures,
		Generation:  sess.generation,
		Refreshing:  sess.refreshing,
	}
}

// cashbookService implements the CashbookSvcFacade interface
type cashbookService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	roomRepo   portsrepo.RoomReader

	mu       sync.Mutex
	sessions map[sessionKey]*cashbookSession
}

// CashbookServiceOption is a functional option for configuring the cashbook service
type CashbookServiceOption func(*cashbookService)

// WithCashbookPropertyAuthorizer sets the property authorizer for the cashbook service.
func WithCashbookPropertyAuthorizer(authorizer portssvc.PropertyAuthorizerSvc) CashbookServiceOption {
	return func(s *cashbookService) {
		s.PropertyAuthorizer = authorizer
	}
}

// NewCashbookService creates a new cashbook service with the provided options
func NewCashbookService(ledgerRepo portsrepo.LedgerRepositoryFacade, roomRepo portsrepo.RoomReader, options ...CashbookServiceOption) portssvc.CashbookSvcFacade {
	svc := &cashbookService{
		ledgerRepo: ledgerRepo,
		roomRepo:   roomRepo,
		sessions:   make(map[sessionKey]*cashbookSession),
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure cashbookService implements the CashbookSvcFacade interface
var _ portssvc.CashbookSvcFacade = (*cashbookService)(nil)

// ensureSessionLocked returns the session for key, opening one if needed.
// The caller must hold the mutex.
func (s *cashbookService) ensureSessionLocked(key sessionKey) *cashbookSession {
	sess, ok := s.sessions[key]
	if !ok {
		sess = newCashbookSession(time.Now())
		s.sessions[key] = sess
	}
	return sess
}

func (s *cashbookService) Snapshot(ctx context.Context, userID, propertyID string) (*domain.CashbookSnapshot, error) {
	if err := s.AuthorizeUser(ctx, userID, propertyID); err != nil {
		s.LogError(ctx, err, "User not authorized to view cashbook",
			slog.String("user_id", userID),
			slog.String("property_id", propertyID))
		return nil, err
	}

	key := sessionKey{userID: userID, propertyID: propertyID}

	s.mu.Lock()
	if sess, ok := s.sessions[key]; ok {
		snap := sess.snapshot(propertyID)
		s.mu.Unlock()
		return &snap, nil
	}
	s.sessions[key] = newCashbookSession(time.Now())
	s.mu.Unlock()

	// First access loads data before anything is shown.
	return s.refresh(ctx, key)
}

func (s *cashbookService) Refresh(ctx context.Context, userID, propertyID string) (*domain.CashbookSnapshot, error) {
	if err := s.AuthorizeUser(ctx, userID, propertyID); err != nil {
		return nil, err
	}

	key := sessionKey{userID: userID, propertyID: propertyID}

	s.mu.Lock()
	s.ensureSessionLocked(key)
	s.mu.Unlock()

	return s.refresh(ctx, key)
}

func (s *cashbookService) SetWindowMode(ctx context.Context, userID, propertyID string, mode domain.WindowMode) (*domain.CashbookSnapshot, error) {
	if err := s.AuthorizeUser(ctx, userID, propertyID); err != nil {
		return nil, err
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown window mode %q", apperrors.ErrValidation, mode)
	}

	key := sessionKey{userID: userID, propertyID: propertyID}

	s.mu.Lock()
	sess := s.ensureSessionLocked(key)
	sess.windowMode = mode
	s.mu.Unlock()

	return s.refresh(ctx, key)
}

func (s *cashbookService) SetAnchorDate(ctx context.Context, userID, propertyID string, anchor time.Time) (*domain.CashbookSnapshot, error) {
	if err := s.AuthorizeUser(ctx, userID, propertyID); err != nil {
		return nil, err
	}

	key := sessionKey{userID: userID, propertyID: propertyID}

	s.mu.Lock()
	sess := s.ensureSessionLocked(key)
	s.moveAnchorLocked(sess, anchor)
	s.mu.Unlock()

	return s.refresh(ctx, key)
}

// moveAnchorLocked moves the anchor and, outside of custom-range mode, drags
// the custom bounds along so a later switch to custom mode starts from the
// anchor day. Explicit custom bounds survive anchor moves only in custom mode.
func (s *cashbookService) moveAnchorLocked(sess *cashbookSession, anchor time.Time) {
	sess.anchorDate = datewindow.StartOfDay(anchor)
	if sess.windowMode != domain.WindowCustom {
		sess.rangeFrom = sess.anchorDate
		sess.rangeTo = sess.anchorDate
	}
}

func (s *cashbookService) SetCustomRange(ctx context.Context, userID, propertyID string, from, to time.Time) (*domain.CashbookSnapshot, error) {
	if err := s.AuthorizeUser(ctx, userID, propertyID); err != nil {
		return nil, err
	}

	key := sessionKey{userID: userID, propertyID: propertyID}

	// An inverted range is kept as entered; it resolves to an empty window
	// and the refresh simply finds no rows.
	s.mu.Lock()
	sess := s.ensureSessionLocked(key)
	sess.windowMode = domain.WindowCustom
	sess.rangeFrom = datewindow.StartOfDay(from)
	sess.rangeTo = datewindow.StartOfDay(to)
	s.mu.Unlock()

	return s.refresh(ctx, key)
}

func (s *cashbookService) SubmitExpense(ctx context.Context, userID, propertyID string, req dto.SubmitExpenseRequest) (*domain.CashbookSnapshot, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: sign in to record expenses", apperrors.ErrUnauthorized)
	}
	if err := s.AuthorizeUser(ctx, userID, propertyID); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		s.LogDebug(ctx, "Rejected expense with unparsable amount",
			slog.String("amount", req.Amount))
		return nil, apperrors.ErrInvalidAmount
	}
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	entryDate, err := time.ParseInLocation(dto.DateOnly, req.Date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid expense date %q", apperrors.ErrValidation, req.Date)
	}

	now := time.Now()
	entry := domain.LedgerEntry{
		EntryID:    uuid.NewString(),
		PropertyID: propertyID,
		Kind:       domain.Expense,
		Amount:     amount,
		Method:     req.Method,
		Note:       req.Note,
		// Date-only input lands at mid-day so the calendar day is stable
		// across timezone shifts.
		OccurredAt: datewindow.MidDay(entryDate),
		RoomID:     req.RoomID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	entryID, err := s.ledgerRepo.SaveEntry(ctx, entry)
	if err != nil {
		s.LogError(ctx, err, "Failed to save expense entry",
			slog.String("property_id", propertyID))
		return nil, fmt.Errorf("failed to record expense: %w", err)
	}

	s.LogInfo(ctx, "Expense recorded",
		slog.String("entry_id", entryID),
		slog.String("property_id", propertyID),
		slog.String("amount", amount.String()))

	// The view follows the entry: anchor moves to the expense date, then
	// everything reloads.
	key := sessionKey{userID: userID, propertyID: propertyID}

	s.mu.Lock()
	sess := s.ensureSessionLocked(key)
	s.moveAnchorLocked(sess, entryDate)
	s.mu.Unlock()

	return s.refresh(ctx, key)
}

func (s *cashbookService) Export(ctx context.Context, userID, propertyID string) (*domain.LedgerExport, error) {
	if err := s.AuthorizeUser(ctx, userID, propertyID); err != nil {
		return nil, err
	}

	key := sessionKey{userID: userID, propertyID: propertyID}

	s.mu.Lock()
	sess, ok := s.sessions[key]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: no cashbook is open for this property", apperrors.ErrNothingToExport)
	}
	snap := sess.snapshot(propertyID)
	s.mu.Unlock()

	// The export mirrors what is on screen right now; it never re-queries.
	if len(snap.Entries) == 0 {
		return nil, apperrors.ErrNothingToExport
	}

	content, err := exporting.BuildWorkbook(&snap, time.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to build export workbook",
			slog.String("property_id", propertyID))
		return nil, fmt.Errorf("failed to build export: %w", err)
	}

	export := &domain.LedgerExport{
		Filename: exporting.Filename(snap.WindowMode, snap.Window),
		Content:  content,
	}

	s.LogInfo(ctx, "Cashbook exported",
		slog.String("property_id", propertyID),
		slog.String("filename", export.Filename),
		slog.Int("entry_count", len(snap.Entries)))
	return export, nil
}

func (s *cashbookService) Close(ctx context.Context, userID, propertyID string) error {
	key := sessionKey{userID: userID, propertyID: propertyID}

	// Dropping the session invalidates its generation; any refresh still in
	// flight finds no session to apply to and discards its results.
	s.mu.Lock()
	delete(s.sessions, key)
	s.mu.Unlock()

	s.LogDebug(ctx, "Cashbook session closed",
		slog.String("user_id", userID),
		slog.String("property_id", propertyID))
	return nil
}

// refresh reloads the three data slots of a session: the entry list for the
// active window, the anchor day totals and the anchor month totals. The
// queries run concurrently and fail independently; a failed slot resets to
// zero while the others keep their fresh values. Results are applied only if
// no newer refresh has started in the meantime.
func (s *cashbookService) refresh(ctx context.Context, key sessionKey) (*domain.CashbookSnapshot, error) {
	s.mu.Lock()
	sess, ok := s.sessions[key]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: no cashbook is open for this property", apperrors.ErrNotFound)
	}
	sess.generation++
	gen := sess.generation
	sess.refreshing = true
	mode, anchor, from, to := sess.windowMode, sess.anchorDate, sess.rangeFrom, sess.rangeTo
	s.mu.Unlock()

	window := datewindow.Resolve(mode, anchor, from, to)
	dayWindow := datewindow.DayWindow(anchor)
	monthWindow := datewindow.MonthWindow(anchor)

	var (
		entries    []domain.LedgerEntry
		roomNames  map[string]string
		entriesErr error

		dayInputs []domain.AggregateInput
		dayErr    error

		monthInputs []domain.AggregateInput
		monthErr    error
	)

	// Slot errors stay local so one failed query never cancels the others.
	var g errgroup.Group
	g.Go(func() error {
		entries, entriesErr = s.ledgerRepo.FindEntriesByDateRange(ctx, key.propertyID, window)
		if entriesErr != nil {
			return nil
		}
		roomNames = s.resolveRoomNames(ctx, entries)
		return nil
	})
	g.Go(func() error {
		dayInputs, dayErr = s.ledgerRepo.FindAggregateInputsByDateRange(ctx, key.propertyID, dayWindow)
		return nil
	})
	g.Go(func() error {
		monthInputs, monthErr = s.ledgerRepo.FindAggregateInputsByDateRange(ctx, key.propertyID, monthWindow)
		return nil
	})
	_ = g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok = s.sessions[key]
	if !ok {
		return nil, fmt.Errorf("%w: no cashbook is open for this property", apperrors.ErrNotFound)
	}
	if sess.generation != gen {
		// A newer refresh superseded this one; its results win.
		snap := sess.snapshot(key.propertyID)
		return &snap, nil
	}

	sess.refreshing = false
	sess.failures = nil

	if entriesErr != nil {
		s.LogError(ctx, entriesErr, "Cashbook entry list query failed",
			slog.String("property_id", key.propertyID))
		sess.entries = []domain.LedgerEntry{}
		sess.roomNames = map[string]string{}
		sess.rangeTotals = domain.ZeroTotals()
		sess.failures = append(sess.failures, domain.SlotFailure{
			Slot: domain.SlotEntries,
			Err:  fmt.Errorf("%w: %v", apperrors.ErrRemote, entriesErr),
		})
	} else {
		sess.entries = entries
		sess.roomNames = roomNames
		// The active range totals come from the displayed list itself.
		sess.rangeTotals = accounting.Aggregate(entries)
	}

	if dayErr != nil {
		s.LogError(ctx, dayErr, "Cashbook day totals query failed",
			slog.String("property_id", key.propertyID))
		sess.dayTotals = domain.ZeroTotals()
		sess.failures = append(sess.failures, domain.SlotFailure{
			Slot: domain.SlotDayTotals,
			Err:  fmt.Errorf("%w: %v", apperrors.ErrRemote, dayErr),
		})
	} else {
		sess.dayTotals = accounting.AggregateInputs(dayInputs)
	}

	if monthErr != nil {
		s.LogError(ctx, monthErr, "Cashbook month totals query failed",
			slog.String("property_id", key.propertyID))
		sess.monthTotals = domain.ZeroTotals()
		sess.failures = append(sess.failures, domain.SlotFailure{
			Slot: domain.SlotMonthTotals,
			Err:  fmt.Errorf("%w: %v", apperrors.ErrRemote, monthErr),
		})
	} else {
		sess.monthTotals = accounting.AggregateInputs(monthInputs)
	}

	snap := sess.snapshot(key.propertyID)
	return &snap, nil
}

// resolveRoomNames labels the rooms referenced by the entry list. Label
// resolution is cosmetic; on failure the entries simply show no room name.
func (s *cashbookService) resolveRoomNames(ctx context.Context, entries []domain.LedgerEntry) map[string]string {
	seen := make(map[string]struct{})
	roomIDs := make([]string, 0)
	for _, e := range entries {
		if e.RoomID == nil {
			continue
		}
		if _, dup := seen[*e.RoomID]; dup {
			continue
		}
		seen[*e.RoomID] = struct{}{}
		roomIDs = append(roomIDs, *e.RoomID)
	}
	if len(roomIDs) == 0 {
		return map[string]string{}
	}

	names, err := s.roomRepo.FindRoomNamesByIDs(ctx, roomIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve room names for cashbook entries",
			slog.Int("room_count", len(roomIDs)))
		return map[string]string{}
	}
	return names
}
