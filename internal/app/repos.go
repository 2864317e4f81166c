package app

import (
	"gorm.io/gorm"

	batchrepo "github.com/yungbote/metalqc-backend/internal/data/repos/batch"
	dtrepo "github.com/yungbote/metalqc-backend/internal/data/repos/defecttype"
	insprepo "github.com/yungbote/metalqc-backend/internal/data/repos/inspection"
	iprepo "github.com/yungbote/metalqc-backend/internal/data/repos/inspectionpoint"
	ptrepo "github.com/yungbote/metalqc-backend/internal/data/repos/producttype"
	rolerepo "github.com/yungbote/metalqc-backend/internal/data/repos/role"
	userrepo "github.com/yungbote/metalqc-backend/internal/data/repos/user"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

type Repos struct {
	User            userrepo.UserRepo
	Role            rolerepo.RoleRepo
	ProductType     ptrepo.ProductTypeRepo
	Batch           batchrepo.BatchRepo
	Inspection      insprepo.InspectionRepo
	DefectDetail    insprepo.DefectDetailRepo
	DefectType      dtrepo.DefectTypeRepo
	InspectionPoint iprepo.InspectionPointRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:            userrepo.NewUserRepo(db, log),
		Role:            rolerepo.NewRoleRepo(db, log),
		ProductType:     ptrepo.NewProductTypeRepo(db, log),
		Batch:           batchrepo.NewBatchRepo(db, log),
		Inspection:      insprepo.NewInspectionRepo(db, log),
		DefectDetail:    insprepo.NewDefectDetailRepo(db, log),
		DefectType:      dtrepo.NewDefectTypeRepo(db, log),
		InspectionPoint: iprepo.NewInspectionPointRepo(db, log),
	}
}
