package services

import (
	"testing"

	"gorm.io/gorm"

	batchrepo "github.com/yungbote/metalqc-backend/internal/data/repos/batch"
	dtrepo "github.com/yungbote/metalqc-backend/internal/data/repos/defecttype"
	insprepo "github.com/yungbote/metalqc-backend/internal/data/repos/inspection"
	iprepo "github.com/yungbote/metalqc-backend/internal/data/repos/inspectionpoint"
	ptrepo "github.com/yungbote/metalqc-backend/internal/data/repos/producttype"
	rolerepo "github.com/yungbote/metalqc-backend/internal/data/repos/role"
	"github.com/yungbote/metalqc-backend/internal/data/repos/testutil"
	userrepo "github.com/yungbote/metalqc-backend/internal/data/repos/user"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

// testDeps rebuilds the full service graph on a rolled-back transaction so
// every test sees an empty database.
type testDeps struct {
	tx  *gorm.DB
	log *logger.Logger

	users           UserService
	roles           RoleService
	productTypes    ProductTypeService
	batches         BatchService
	inspections     InspectionService
	defectTypes     DefectTypeService
	inspectionPoint InspectionPointService
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)

	users := userrepo.NewUserRepo(tx, log)
	roles := rolerepo.NewRoleRepo(tx, log)
	types := ptrepo.NewProductTypeRepo(tx, log)
	batches := batchrepo.NewBatchRepo(tx, log)
	insp := insprepo.NewInspectionRepo(tx, log)
	details := insprepo.NewDefectDetailRepo(tx, log)
	defects := dtrepo.NewDefectTypeRepo(tx, log)
	points := iprepo.NewInspectionPointRepo(tx, log)

	return &testDeps{
		tx:  tx,
		log: log,

		users:           NewUserService(tx, log, users, roles),
		roles:           NewRoleService(tx, log, roles, users),
		productTypes:    NewProductTypeService(tx, log, types, batches),
		batches:         NewBatchService(tx, log, batches, types, insp, details),
		inspections:     NewInspectionService(tx, log, insp, details, batches, defects),
		defectTypes:     NewDefectTypeService(tx, log, defects, details),
		inspectionPoint: NewInspectionPointService(tx, log, points),
	}
}
