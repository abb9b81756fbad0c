package portfolio

import (
	"context"
	"time"

	"solarvest-backend/internal/domain"
	"solarvest-backend/internal/pkg/apperr"
	"solarvest-backend/internal/rates"
	"solarvest-backend/internal/valuation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KycChecker reports whether a user's identity verification is approved.
type KycChecker interface {
	IsApproved(ctx context.Context, userID uuid.UUID) (bool, error)
}

// Service owns portfolio reads and buy/sell request submission. Submissions
// validate against current state and stage a pending request; they never touch
// balance or holdings.
type Service struct {
	DB    *gorm.DB
	Rates rates.Provider
	Kyc   KycChecker
}

// Investment is one holding with its read-time USD valuation.
type Investment struct {
	PortfolioID      uuid.UUID `json:"portfolio_id"`
	ProjectID        uuid.UUID `json:"project_id"`
	ProjectName      string    `json:"project_name"`
	Shares           int64     `json:"shares"`
	Amount           int64     `json:"amount"`
	AmountUSD        float64   `json:"amount_usd"`
	MonthlyReturnUSD float64   `json:"monthly_return_usd"`
	CreatedAt        time.Time `json:"created_at"`
}

// View is the full portfolio listing response.
type View struct {
	USDRate               float64      `json:"usd_rate"`
	TotalMonthlyReturnUSD float64      `json:"total_monthly_return_usd"`
	Investments           []Investment `json:"investments"`
}

// List returns the user's holdings valued at the current rate. The rate is
// read once per call and never cached, so consecutive listings may differ.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (*View, error) {
	var holdings []domain.Holding
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&holdings).Error; err != nil {
		return nil, err
	}

	rate := s.Rates.USDRate(ctx)

	projectNames := map[uuid.UUID]string{}
	if len(holdings) > 0 {
		ids := make([]uuid.UUID, 0, len(holdings))
		for _, h := range holdings {
			ids = append(ids, h.ProjectID)
		}
		var projects []domain.Project
		s.DB.WithContext(ctx).Where("project_id IN ?", ids).Find(&projects)
		for _, p := range projects {
			projectNames[p.ProjectID] = p.Name
		}
	}

	view := &View{
		USDRate:     rate,
		Investments: make([]Investment, 0, len(holdings)),
	}
	for _, h := range holdings {
		v := valuation.Valuate(h.Shares, h.Amount, rate)
		view.Investments = append(view.Investments, Investment{
			PortfolioID:      h.PortfolioID,
			ProjectID:        h.ProjectID,
			ProjectName:      projectNames[h.ProjectID],
			Shares:           v.Shares,
			Amount:           v.Amount,
			AmountUSD:        v.AmountUSD,
			MonthlyReturnUSD: v.MonthlyReturnUSD,
			CreatedAt:        h.CreatedAt,
		})
		view.TotalMonthlyReturnUSD += v.MonthlyReturnUSD
	}
	return view, nil
}

// SubmitBuy converts amount to whole shares (floor) and stages a pending buy
// request. Requires approved KYC. Balance is not touched and not checked here;
// the authoritative check happens at approval.
func (s *Service) SubmitBuy(ctx context.Context, userID, projectID uuid.UUID, amount int64) (*domain.TradeRequest, error) {
	approved, err := s.Kyc.IsApproved(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, apperr.New(apperr.KycRequired, "Identity verification must be approved before investing")
	}

	var project domain.Project
	if err := s.DB.WithContext(ctx).Where("project_id = ?", projectID).First(&project).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Project not found")
		}
		return nil, err
	}

	shares := amount / s.Rates.SharePrice()
	if shares < 1 {
		return nil, apperr.New(apperr.InvalidAmount, "Amount is below the price of one share")
	}

	req := domain.TradeRequest{
		UserID:    userID,
		Type:      domain.TradeTypeBuy,
		ProjectID: &projectID,
		Shares:    shares,
		Amount:    shares * s.Rates.SharePrice(),
		Status:    domain.RequestStatusPending,
	}
	if err := s.DB.WithContext(ctx).Create(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// SubmitSell validates ownership and share bounds against the current holding
// and stages a pending sell request. Holdings stay untouched until approval.
func (s *Service) SubmitSell(ctx context.Context, userID, portfolioID uuid.UUID, shares int64) (*domain.TradeRequest, error) {
	var holding domain.Holding
	if err := s.DB.WithContext(ctx).
		Where("portfolio_id = ? AND user_id = ?", portfolioID, userID).
		First(&holding).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "Holding not found")
		}
		return nil, err
	}
	if shares < 1 || shares > holding.Shares {
		return nil, apperr.New(apperr.InvalidShareCount, "Cannot sell more shares than owned")
	}

	req := domain.TradeRequest{
		UserID:      userID,
		Type:        domain.TradeTypeSell,
		ProjectID:   &holding.ProjectID,
		PortfolioID: &portfolioID,
		Shares:      shares,
		Amount:      shares * s.Rates.SharePrice(),
		Status:      domain.RequestStatusPending,
	}
	if err := s.DB.WithContext(ctx).Create(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// RecentInvestment is one approved buy within the advisory window.
type RecentInvestment struct {
	RequestID  uuid.UUID `json:"request_id"`
	ProjectID  uuid.UUID `json:"project_id"`
	Shares     int64     `json:"shares"`
	Amount     int64     `json:"amount"`
	ApprovedAt time.Time `json:"approved_at"`
}

// WithdrawalCheck scans approved buys within a rolling 1-month window. Purely
// advisory: it warns, it never blocks a withdrawal.
type WithdrawalCheck struct {
	HasRecentInvestments bool               `json:"has_recent_investments"`
	RecentInvestments    []RecentInvestment `json:"recent_investments"`
}

func (s *Service) CheckWithdrawal(ctx context.Context, userID uuid.UUID) (*WithdrawalCheck, error) {
	cutoff := time.Now().AddDate(0, -1, 0)
	var reqs []domain.TradeRequest
	if err := s.DB.WithContext(ctx).
		Where("user_id = ? AND type = ? AND status = ? AND updated_at >= ?",
			userID, domain.TradeTypeBuy, domain.RequestStatusApproved, cutoff).
		Order("updated_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}

	check := &WithdrawalCheck{
		HasRecentInvestments: len(reqs) > 0,
		RecentInvestments:    make([]RecentInvestment, 0, len(reqs)),
	}
	for _, r := range reqs {
		inv := RecentInvestment{
			RequestID:  r.RequestID,
			Shares:     r.Shares,
			Amount:     r.Amount,
			ApprovedAt: r.UpdatedAt,
		}
		if r.ProjectID != nil {
			inv.ProjectID = *r.ProjectID
		}
		check.RecentInvestments = append(check.RecentInvestments, inv)
	}
	return check, nil
}
