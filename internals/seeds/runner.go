package seeds

import (
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/gorm"

	feeTypes "futbolokulu_backend/internals/seeds/fee_types"
	groups "futbolokulu_backend/internals/seeds/groups"
)

// RunAllSeeds: data referensi (group umur + jenis iuran). Aman dijalankan ulang.
func RunAllSeeds(db *gorm.DB, log *zap.Logger, dir string) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("seeds")

	//* Students
	if _, err := groups.SeedGroupsFromJSON(db, log, filepath.Join(dir, "data_groups.json")); err != nil {
		return err
	}

	//* Finance
	if _, err := feeTypes.SeedFeeTypesFromJSON(db, log, filepath.Join(dir, "data_fee_types.json")); err != nil {
		return err
	}
	return nil
}
