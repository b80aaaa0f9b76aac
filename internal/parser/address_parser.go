package parser

import (
	"go.uber.org/zap"

	"github.com/cn-address-parser/app/models"
	"github.com/cn-address-parser/internal/extract"
	"github.com/cn-address-parser/internal/refdata"
)

// AddressParser parser địa chỉ chính: extract → resolve → reconcile →
// normalize → score. Stateless over the shared read-only table; safe for
// concurrent use.
type AddressParser struct {
	table    *refdata.Table
	resolver *Resolver
	logger   *zap.Logger
}

// NewAddressParser tạo mới AddressParser.
func NewAddressParser(table *refdata.Table, logger *zap.Logger) *AddressParser {
	return &AddressParser{
		table:    table,
		resolver: NewResolver(table, logger),
		logger:   logger,
	}
}

// Parse normalizes one raw address. It never fails: every extractor and
// the resolver degrade to null/default fields on input they cannot read.
func (ap *AddressParser) Parse(raw string) *models.ParseResult {
	text := extract.Clean(raw)
	text, phone := extract.Phone(text)
	text, inputPostal := extract.Postal(text)
	text, recipient := extract.Recipient(text)
	core := extract.StripSpaces(text)

	res := ap.resolver.Resolve(core)
	decision := ReconcilePostal(ap.table, &res, inputPostal)

	// With nothing resolved the street keeps the full residual text.
	street := StripDivisionPrefix(core, res.Province, res.City, res.District)

	detail := DetailLevel(street)
	hasDistrict := res.District != ""
	confidence := Confidence(hasDistrict, detail, phone != "")
	deliverable := Deliverable(hasDistrict, detail, phone != "", confidence)

	result := &models.ParseResult{
		Province:       models.StrPtr(res.Province),
		City:           models.StrPtr(res.City),
		District:       models.StrPtr(res.District),
		Street:         street,
		InputPostal:    models.StrPtr(inputPostal),
		PostalCode:     models.StrPtr(decision.Final),
		PostalMismatch: decision.Mismatch,
		Lat:            res.Lat,
		Lng:            res.Lng,
		Recipient:      models.StrPtr(recipient),
		Phone:          models.StrPtr(phone),
		NormalizedCN:   ComposeCN(res.Province, res.City, res.District, street),
		NormalizedEN:   ComposeEN(res.Province, res.City, res.District, street, decision.Final),
		Deliverable:    deliverable,
		Confidence:     confidence,
		NeedsDetail:    detail != models.DetailUnit,
	}

	ap.logger.Debug("đã parse địa chỉ",
		zap.String("province", res.Province),
		zap.String("district", res.District),
		zap.Bool("deliverable", deliverable),
		zap.Float64("confidence", confidence))
	return result
}

// ParseBatch parse nhiều địa chỉ tuần tự; mỗi phần tử độc lập.
func (ap *AddressParser) ParseBatch(raws []string) []*models.ParseResult {
	results := make([]*models.ParseResult, len(raws))
	for i, raw := range raws {
		results[i] = ap.Parse(raw)
	}
	ap.logger.Info("đã parse batch địa chỉ", zap.Int("total", len(raws)))
	return results
}
