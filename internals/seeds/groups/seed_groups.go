package groups

import (
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	model "futbolokulu_backend/internals/features/students/groups/model"
)

type GroupSeed struct {
	Name        string  `json:"name"`
	AgeCategory *string `json:"age_category"`
}

// SeedGroupsFromJSON: group yang namanya sudah ada dilewati.
func SeedGroupsFromJSON(db *gorm.DB, log *zap.Logger, filePath string) (int, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("📥 Membaca file", zap.String("path", filePath))
	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, errors.Wrap(err, "read groups seed")
	}
	var seeds []GroupSeed
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		return 0, errors.Wrap(err, "decode groups seed")
	}

	var existing []string
	if err := db.Model(&model.Group{}).Pluck("group_name", &existing).Error; err != nil {
		return 0, errors.Wrap(err, "load existing groups")
	}
	have := make(map[string]bool, len(existing))
	for _, n := range existing {
		have[strings.ToLower(n)] = true
	}

	var rows []model.Group
	for _, s := range seeds {
		name := strings.TrimSpace(s.Name)
		if name == "" || have[strings.ToLower(name)] {
			continue
		}
		have[strings.ToLower(name)] = true
		rows = append(rows, model.Group{GroupName: name, GroupAgeCategory: s.AgeCategory, GroupIsActive: true})
	}
	if len(rows) == 0 {
		log.Info("ℹ️ groups sudah lengkap, dilewati")
		return 0, nil
	}
	if err := db.Create(&rows).Error; err != nil {
		return 0, errors.Wrap(err, "insert groups")
	}
	log.Info("✅ groups seeded", zap.Int("count", len(rows)))
	return len(rows), nil
}
