package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dscat/internal/catalog"
	"dscat/pkg/contracts/domain"
)

// metadataProbe captures the metadata the assembler actually passes in.
type metadataProbe struct {
	seen domain.Metadata
}

func (p *metadataProbe) ID() string { return "probe" }

func (p *metadataProbe) Extract(_ context.Context, req catalog.Request) (*domain.ExtractionResult, error) {
	p.seen = req.Metadata
	// Extractors are allowed to write into the map they received.
	req.Metadata["touched"] = true
	return &domain.ExtractionResult{
		Data:     [][]string{{"1"}},
		Target:   []string{"a"},
		Metadata: req.Metadata,
	}, nil
}

func TestAssemble_NilMetadataBecomesEmptyMap(t *testing.T) {
	asm := catalog.NewAssembler()
	probe := &metadataProbe{}

	ds, err := asm.Assemble(context.Background(), "ds", probe, catalog.Request{})
	require.NoError(t, err)

	assert.NotNil(t, probe.seen, "extractor must never receive nil metadata")
	assert.Equal(t, true, ds.Metadata["touched"])
}

func TestAssemble_CallerMetadataNotMutated(t *testing.T) {
	asm := catalog.NewAssembler()
	caller := domain.Metadata{"origin": "caller"}

	ds, err := asm.Assemble(context.Background(), "ds", &metadataProbe{}, catalog.Request{Metadata: caller})
	require.NoError(t, err)

	assert.Equal(t, "caller", ds.Metadata["origin"])
	_, leaked := caller["touched"]
	assert.False(t, leaked, "extractor writes must not leak into the caller's map")
}

func TestAssemble_Idempotent(t *testing.T) {
	asm := catalog.NewAssembler()
	md := domain.Metadata{"k": "v"}

	first, err := asm.Assemble(context.Background(), "ds", newStub("stub"), catalog.Request{Metadata: md})
	require.NoError(t, err)
	second, err := asm.Assemble(context.Background(), "ds", newStub("stub"), catalog.Request{Metadata: md})
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, first.Target, second.Target)
	assert.Equal(t, first.Metadata, second.Metadata)
}

func TestAssemble_NilExtractor(t *testing.T) {
	asm := catalog.NewAssembler()

	_, err := asm.Assemble(context.Background(), "ds", nil, catalog.Request{})
	require.Error(t, err)
}

func TestAssemble_TargetLengthInvariant(t *testing.T) {
	asm := catalog.NewAssembler()
	bad := &stubExtractor{
		id: "bad",
		result: &domain.ExtractionResult{
			Data:   [][]string{{"1"}, {"2"}},
			Target: []string{"only-one"},
		},
	}

	_, err := asm.Assemble(context.Background(), "ds", bad, catalog.Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "labels")
}

func TestAssemble_OptionalTarget(t *testing.T) {
	asm := catalog.NewAssembler()
	unlabeled := &stubExtractor{
		id: "unlabeled",
		result: &domain.ExtractionResult{
			Data: [][]string{{"1"}, {"2"}},
		},
	}

	ds, err := asm.Assemble(context.Background(), "ds", unlabeled, catalog.Request{})
	require.NoError(t, err)
	assert.False(t, ds.HasTarget())
	assert.Equal(t, 2, ds.Rows())
	assert.False(t, ds.AssembledAt.IsZero())
}
