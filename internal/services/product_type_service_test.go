package services

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/metalqc-backend/internal/data/repos/testutil"
)

func TestProductTypeServiceCreateDuplicateCode(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	if _, err := deps.productTypes.Create(ctx, 0, CreateProductTypeInput{
		TypeCode: "PT-01", TypeName: "Cold-rolled coil",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := deps.productTypes.Create(ctx, 0, CreateProductTypeInput{
		TypeCode: "PT-01", TypeName: "Another",
	})
	assertStatus(t, err, 400)
}

func TestProductTypeServiceDeleteRestricted(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	pt, err := deps.productTypes.Create(ctx, 0, CreateProductTypeInput{
		TypeCode: "PT-02", TypeName: "Rebar",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := deps.batches.Create(ctx, 0, CreateBatchInput{
		BatchNumber:    "PT-B-1",
		ProductTypeID:  pt.ID,
		ProductionDate: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("create batch: %v", err)
	}

	// Referenced: refuse.
	err = deps.productTypes.Delete(ctx, pt.ID)
	assertStatus(t, err, 400)

	// Still present.
	if _, err := deps.productTypes.Get(ctx, pt.ID); err != nil {
		t.Fatalf("Get after refused delete: %v", err)
	}
}

func TestProductTypeServiceDeleteUnreferenced(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	pt, err := deps.productTypes.Create(ctx, 0, CreateProductTypeInput{
		TypeCode: "PT-03", TypeName: "Wire rod",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := deps.productTypes.Delete(ctx, pt.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = deps.productTypes.Get(ctx, pt.ID)
	assertStatus(t, err, 404)
}

func TestProductTypeServicePartialUpdate(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	seeded := testutil.SeedProductType(t, deps.tx, "PT-04")

	grade := "S355JR"
	updated, err := deps.productTypes.Update(ctx, seeded.ID, UpdateProductTypeInput{MaterialGrade: &grade})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.MaterialGrade != grade {
		t.Fatalf("expected grade %q, got %q", grade, updated.MaterialGrade)
	}
	if updated.TypeCode != "PT-04" {
		t.Fatalf("type code changed unexpectedly: %q", updated.TypeCode)
	}
	if updated.Standard != seeded.Standard {
		t.Fatalf("standard changed unexpectedly: %q", updated.Standard)
	}
}

func TestDefectTypeServiceDeleteRestricted(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	pt := testutil.SeedProductType(t, deps.tx, "PT-05")
	b := testutil.SeedBatch(t, deps.tx, "PT-B-2", pt.ID)

	dt, err := deps.defectTypes.Create(ctx, 0, CreateDefectTypeInput{DefectCode: "DD-01", DefectName: "Lamination"})
	if err != nil {
		t.Fatalf("create defect type: %v", err)
	}
	r, err := deps.inspections.Create(ctx, nil, CreateInspectionInput{BatchID: b.ID, InspectorName: "qc"})
	if err != nil {
		t.Fatalf("create inspection: %v", err)
	}
	if _, err := deps.inspections.AddDefectDetail(ctx, r.ID, CreateDefectDetailInput{DefectTypeID: dt.ID}); err != nil {
		t.Fatalf("add defect detail: %v", err)
	}

	err = deps.defectTypes.Delete(ctx, dt.ID)
	assertStatus(t, err, 400)
}

func TestInspectionPointServiceCRUD(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	p, err := deps.inspectionPoint.Create(ctx, CreateInspectionPointInput{
		PointCode:     "IP-01",
		PointName:     "Exit thickness gauge",
		EquipmentType: "laser_gauge",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = deps.inspectionPoint.Create(ctx, CreateInspectionPointInput{
		PointCode: "IP-01", PointName: "Duplicate",
	})
	assertStatus(t, err, 400)

	loc := "stand 5 exit"
	updated, err := deps.inspectionPoint.Update(ctx, p.ID, UpdateInspectionPointInput{LocationInLine: &loc})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.LocationInLine != loc {
		t.Fatalf("expected location %q, got %q", loc, updated.LocationInLine)
	}
	if updated.EquipmentType != "laser_gauge" {
		t.Fatalf("equipment type changed unexpectedly: %q", updated.EquipmentType)
	}

	if err := deps.inspectionPoint.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = deps.inspectionPoint.Get(ctx, p.ID)
	assertStatus(t, err, 404)
}
