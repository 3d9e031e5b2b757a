package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/domain/repository"
	"github.com/truckershub-backend/internal/pkg/errors"
	"go.uber.org/zap"
)

const countryColumns = `
	code, name, flag, calling_code,
	speed_motorway, speed_rural, speed_urban,
	toll_system, toll_system_name, vignette_required, electronic_toll_required,
	winter_tires_required, snow_chains_required, winter_period_start, winter_period_end, winter_condition,
	emergency_general, emergency_police, emergency_breakdown,
	driving_ban_info, currency, language, tips, common_issues`

type countryRow struct {
	Code                   string         `db:"code"`
	Name                   string         `db:"name"`
	Flag                   string         `db:"flag"`
	CallingCode            string         `db:"calling_code"`
	SpeedMotorway          int            `db:"speed_motorway"`
	SpeedRural             int            `db:"speed_rural"`
	SpeedUrban             int            `db:"speed_urban"`
	TollSystem             string         `db:"toll_system"`
	TollSystemName         string         `db:"toll_system_name"`
	VignetteRequired       bool           `db:"vignette_required"`
	ElectronicTollRequired bool           `db:"electronic_toll_required"`
	WinterTiresRequired    bool           `db:"winter_tires_required"`
	SnowChainsRequired     bool           `db:"snow_chains_required"`
	WinterPeriodStart      string         `db:"winter_period_start"`
	WinterPeriodEnd        string         `db:"winter_period_end"`
	WinterCondition        string         `db:"winter_condition"`
	EmergencyGeneral       string         `db:"emergency_general"`
	EmergencyPolice        string         `db:"emergency_police"`
	EmergencyBreakdown     string         `db:"emergency_breakdown"`
	DrivingBanInfo         string         `db:"driving_ban_info"`
	Currency               string         `db:"currency"`
	Language               string         `db:"language"`
	Tips                   pq.StringArray `db:"tips"`
	CommonIssues           pq.StringArray `db:"common_issues"`
}

func (r *countryRow) toDomain() *domain.CountryInfo {
	return &domain.CountryInfo{
		Code:        r.Code,
		Name:        r.Name,
		Flag:        r.Flag,
		CallingCode: r.CallingCode,
		SpeedLimits: domain.SpeedLimits{
			Motorway: r.SpeedMotorway,
			Rural:    r.SpeedRural,
			Urban:    r.SpeedUrban,
		},
		TollSystem:             domain.TollSystem(r.TollSystem),
		TollSystemName:         r.TollSystemName,
		VignetteRequired:       r.VignetteRequired,
		ElectronicTollRequired: r.ElectronicTollRequired,
		WinterRules: domain.WinterRules{
			TiresRequired:  r.WinterTiresRequired,
			ChainsRequired: r.SnowChainsRequired,
			PeriodStart:    r.WinterPeriodStart,
			PeriodEnd:      r.WinterPeriodEnd,
			Condition:      r.WinterCondition,
		},
		EmergencyNumbers: domain.EmergencyNumbers{
			General:   r.EmergencyGeneral,
			Police:    r.EmergencyPolice,
			Breakdown: r.EmergencyBreakdown,
		},
		DrivingBanInfo: r.DrivingBanInfo,
		Currency:       r.Currency,
		Language:       r.Language,
		Tips:           []string(r.Tips),
		CommonIssues:   []string(r.CommonIssues),
	}
}

type countryRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCountryRepository(db *DB) repository.CountryRepository {
	return &countryRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *countryRepository) GetByCode(ctx context.Context, code string) (*domain.CountryInfo, error) {
	var row countryRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+countryColumns+` FROM countries WHERE code = $1`,
		strings.ToUpper(code),
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get country", zap.String("code", code), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return row.toDomain(), nil
}

func (r *countryRepository) List(ctx context.Context) ([]*domain.CountryInfo, error) {
	var rows []countryRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+countryColumns+` FROM countries ORDER BY code`); err != nil {
		r.logger.Error("Failed to list countries", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	countries := make([]*domain.CountryInfo, 0, len(rows))
	for i := range rows {
		countries = append(countries, rows[i].toDomain())
	}
	return countries, nil
}

func (r *countryRepository) Upsert(ctx context.Context, c *domain.CountryInfo) error {
	query := `
		INSERT INTO countries (` + countryColumns + `, updated_at)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, NOW()
		)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			flag = EXCLUDED.flag,
			calling_code = EXCLUDED.calling_code,
			speed_motorway = EXCLUDED.speed_motorway,
			speed_rural = EXCLUDED.speed_rural,
			speed_urban = EXCLUDED.speed_urban,
			toll_system = EXCLUDED.toll_system,
			toll_system_name = EXCLUDED.toll_system_name,
			vignette_required = EXCLUDED.vignette_required,
			electronic_toll_required = EXCLUDED.electronic_toll_required,
			winter_tires_required = EXCLUDED.winter_tires_required,
			snow_chains_required = EXCLUDED.snow_chains_required,
			winter_period_start = EXCLUDED.winter_period_start,
			winter_period_end = EXCLUDED.winter_period_end,
			winter_condition = EXCLUDED.winter_condition,
			emergency_general = EXCLUDED.emergency_general,
			emergency_police = EXCLUDED.emergency_police,
			emergency_breakdown = EXCLUDED.emergency_breakdown,
			driving_ban_info = EXCLUDED.driving_ban_info,
			currency = EXCLUDED.currency,
			language = EXCLUDED.language,
			tips = EXCLUDED.tips,
			common_issues = EXCLUDED.common_issues,
			updated_at = NOW()`

	tips := c.Tips
	if tips == nil {
		tips = []string{}
	}
	issues := c.CommonIssues
	if issues == nil {
		issues = []string{}
	}

	_, err := r.db.ExecContext(ctx, query,
		strings.ToUpper(c.Code), c.Name, c.Flag, c.CallingCode,
		c.SpeedLimits.Motorway, c.SpeedLimits.Rural, c.SpeedLimits.Urban,
		string(c.TollSystem), c.TollSystemName, c.VignetteRequired, c.ElectronicTollRequired,
		c.WinterRules.TiresRequired, c.WinterRules.ChainsRequired,
		c.WinterRules.PeriodStart, c.WinterRules.PeriodEnd, c.WinterRules.Condition,
		c.EmergencyNumbers.General, c.EmergencyNumbers.Police, c.EmergencyNumbers.Breakdown,
		c.DrivingBanInfo, c.Currency, c.Language,
		pq.Array(tips), pq.Array(issues),
	)
	if err != nil {
		r.logger.Error("Failed to upsert country", zap.String("code", c.Code), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}
