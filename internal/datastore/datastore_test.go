package datastore

import (
	"context"
	"testing"

	"trackday-server/internal/core"
)

type fakeCDN struct {
	present       bool
	contentLength int64
	err           error
}

func (f fakeCDN) Head(ctx context.Context, url string) (bool, int64, error) {
	return f.present, f.contentLength, f.err
}

func TestGetObjectInfosReturnsOneRowPerID(t *testing.T) {
	e := &Engine{cdn: fakeCDN{present: true, contentLength: 1024}, bucket: "b", cdnHost: "cdn.example.com"}

	infos, err := e.GetObjectInfos(context.Background(), 1, []uint32{10, 20}, []uint32{100, 200})
	if err != nil {
		t.Fatalf("GetObjectInfos: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("len(infos) = %d, want 2", len(infos))
	}
	for _, info := range infos {
		if !info.Present || info.ContentLength != 1024 {
			t.Fatalf("info = %+v, want present=true length=1024", info)
		}
	}
}

func TestGetObjectInfosRejectsMismatchedLengths(t *testing.T) {
	e := &Engine{cdn: fakeCDN{}}
	_, err := e.GetObjectInfos(context.Background(), 1, []uint32{10}, []uint32{100, 200})
	if !core.Is(err, core.KindInvalidArgument) {
		t.Fatalf("expected KindInvalidArgument, got %v", err)
	}
}

func TestGetObjectInfosPropagatesCDNError(t *testing.T) {
	e := &Engine{cdn: fakeCDN{err: context.DeadlineExceeded}}
	_, err := e.GetObjectInfos(context.Background(), 1, []uint32{10}, []uint32{100})
	if !core.Is(err, core.KindInternal) {
		t.Fatalf("expected KindInternal, got %v", err)
	}
}

func validChangeMetaParam() ChangeMetaParam {
	dataID, modifiesFlag := uint32(1), uint32(0)
	name, pw := "name", "pw"
	period, referred, dataType, status := uint32(0), uint32(0), uint32(0), uint32(0)
	return ChangeMetaParam{
		DataID:         &dataID,
		ModifiesFlag:   &modifiesFlag,
		Name:           &name,
		Period:         &period,
		MetaBinary:     []byte{},
		Tags:           []string{},
		UpdatePassword: &pw,
		ReferredCount:  &referred,
		DataType:       &dataType,
		Status:         &status,
	}
}

func TestChangeMetaParamValidateAcceptsCompleteParam(t *testing.T) {
	if err := validChangeMetaParam().validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestChangeMetaParamValidateRejectsEachMissingField(t *testing.T) {
	cases := map[string]func(*ChangeMetaParam){
		"DataID":         func(p *ChangeMetaParam) { p.DataID = nil },
		"ModifiesFlag":   func(p *ChangeMetaParam) { p.ModifiesFlag = nil },
		"Name":           func(p *ChangeMetaParam) { p.Name = nil },
		"Period":         func(p *ChangeMetaParam) { p.Period = nil },
		"MetaBinary":     func(p *ChangeMetaParam) { p.MetaBinary = nil },
		"Tags":           func(p *ChangeMetaParam) { p.Tags = nil },
		"UpdatePassword": func(p *ChangeMetaParam) { p.UpdatePassword = nil },
		"ReferredCount":  func(p *ChangeMetaParam) { p.ReferredCount = nil },
		"DataType":       func(p *ChangeMetaParam) { p.DataType = nil },
		"Status":         func(p *ChangeMetaParam) { p.Status = nil },
	}
	for name, clear := range cases {
		p := validChangeMetaParam()
		clear(&p)
		if err := p.validate(); !core.Is(err, core.KindInvalidArgument) {
			t.Fatalf("%s: expected KindInvalidArgument for a missing field, got %v", name, err)
		}
	}
}

func TestChangeMetaRejectsIncompleteParamBeforeTouchingRepo(t *testing.T) {
	e := &Engine{} // nil repo: only safe to call if validation runs first
	p := validChangeMetaParam()
	p.Name = nil
	err := e.ChangeMeta(context.Background(), 1, p)
	if !core.Is(err, core.KindInvalidArgument) {
		t.Fatalf("expected KindInvalidArgument, got %v", err)
	}
}
