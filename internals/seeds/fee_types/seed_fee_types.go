package fee_types

import (
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	model "futbolokulu_backend/internals/features/finance/fee_types/model"
)

type FeeTypeSeed struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Period string          `json:"period"`
}

// SeedFeeTypesFromJSON: fee type global (tanpa group); nama yang sudah ada dilewati.
func SeedFeeTypesFromJSON(db *gorm.DB, log *zap.Logger, filePath string) (int, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("📥 Membaca file", zap.String("path", filePath))
	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, errors.Wrap(err, "read fee types seed")
	}
	var seeds []FeeTypeSeed
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		return 0, errors.Wrap(err, "decode fee types seed")
	}

	var existing []string
	if err := db.Model(&model.FeeType{}).Pluck("fee_type_name", &existing).Error; err != nil {
		return 0, errors.Wrap(err, "load existing fee types")
	}
	have := make(map[string]bool, len(existing))
	for _, n := range existing {
		have[strings.ToLower(n)] = true
	}

	var rows []model.FeeType
	for _, s := range seeds {
		name := strings.TrimSpace(s.Name)
		if name == "" || have[strings.ToLower(name)] {
			continue
		}
		period := model.FeePeriod(strings.ToUpper(strings.TrimSpace(s.Period)))
		if !period.Valid() || !s.Amount.IsPositive() {
			return 0, errors.Errorf("invalid fee type seed %q", name)
		}
		have[strings.ToLower(name)] = true
		rows = append(rows, model.FeeType{
			FeeTypeName:     name,
			FeeTypeAmount:   s.Amount,
			FeeTypePeriod:   period,
			FeeTypeIsActive: true,
		})
	}
	if len(rows) == 0 {
		log.Info("ℹ️ fee types sudah lengkap, dilewati")
		return 0, nil
	}
	if err := db.Create(&rows).Error; err != nil {
		return 0, errors.Wrap(err, "insert fee types")
	}
	log.Info("✅ fee types seeded", zap.Int("count", len(rows)))
	return len(rows), nil
}
