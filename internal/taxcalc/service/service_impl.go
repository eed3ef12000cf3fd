package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	allocationdomain "github.com/marmaralog/brokerage/internal/allocation/domain"
	hscodedomain "github.com/marmaralog/brokerage/internal/hscode/domain"
	shipmentdomain "github.com/marmaralog/brokerage/internal/shipment/domain"
	taxcalcdomain "github.com/marmaralog/brokerage/internal/taxcalc/domain"
	"github.com/marmaralog/brokerage/pkg/money"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         taxcalcdomain.Repository
	Rates        hscodedomain.RateLookup
	ShipmentRepo shipmentdomain.Repository
}

type Service struct {
	log          *zap.Logger
	genID        *snowflake.Node
	repo         taxcalcdomain.Repository
	rates        hscodedomain.RateLookup
	shipmentRepo shipmentdomain.Repository
}

func NewService(p Params) taxcalcdomain.Service {
	return &Service{
		log:          p.Log.Named("taxcalc.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		rates:        p.Rates,
		shipmentRepo: p.ShipmentRepo,
	}
}

func (s *Service) Compute(ctx context.Context, req taxcalcdomain.ComputeRequest) (*taxcalcdomain.CalculationResponse, error) {
	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		return nil, taxcalcdomain.ErrInvalidReference
	}
	if len(req.Items) == 0 {
		return nil, taxcalcdomain.ErrEmptyItems
	}
	if req.CurrencyRate.LessThanOrEqual(decimal.Zero) {
		return nil, taxcalcdomain.ErrInvalidRate
	}
	for _, pool := range []decimal.Decimal{req.TransportCost, req.InsuranceCost, req.StorageCost, req.StampTax} {
		if pool.IsNegative() {
			return nil, taxcalcdomain.ErrNegativePool
		}
	}

	method := req.Method
	if method == "" {
		method = allocationdomain.MethodProportional
	}

	shipment, err := s.shipmentRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, shipmentdomain.ErrNotFound
	}

	// Item values first: every shared-pool share depends on the full set.
	values := make([]decimal.Decimal, len(req.Items))
	totalQuantity := int64(0)
	for i, in := range req.Items {
		if in.UnitCount < 1 {
			return nil, fmt.Errorf("%w: item %d", taxcalcdomain.ErrInvalidUnitCount, i)
		}
		if in.Cost.IsNegative() {
			return nil, fmt.Errorf("%w: item %d", taxcalcdomain.ErrNegativeCost, i)
		}
		values[i] = money.Round2(in.Cost.Mul(decimal.NewFromInt(in.UnitCount)))
		totalQuantity += in.UnitCount
	}

	// Barrier: all shares are fixed before any cascade step runs.
	transportShares, err := allocationdomain.DistributePool(values, req.TransportCost, method)
	if err != nil {
		return nil, err
	}
	insuranceShares, err := allocationdomain.DistributePool(values, req.InsuranceCost, method)
	if err != nil {
		return nil, err
	}
	storageShares, err := allocationdomain.DistributePool(values, req.StorageCost, method)
	if err != nil {
		return nil, err
	}
	stampShares, err := allocationdomain.DistributePool(values, req.StampTax, method)
	if err != nil {
		return nil, err
	}

	rates := make(map[string]*hscodedomain.HSCode)
	for _, in := range req.Items {
		code := strings.TrimSpace(in.TRHSCode)
		if _, ok := rates[code]; ok {
			continue
		}
		row, err := s.rates.FindByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, fmt.Errorf("%w: %s", taxcalcdomain.ErrUnknownClassification, code)
		}
		rates[code] = row
	}

	calc := &taxcalcdomain.TaxCalculation{
		ID:            s.genID.Generate(),
		Reference:     reference,
		InvoiceNo:     strings.TrimSpace(req.InvoiceNo),
		InvoiceDate:   req.InvoiceDate,
		TotalQuantity: totalQuantity,
		TransportCost: req.TransportCost,
		InsuranceCost: req.InsuranceCost,
		StorageCost:   req.StorageCost,
		Method:        method,
		CurrencyRate:  req.CurrencyRate,
		StampTax:      req.StampTax,
		Preferential:  req.Preferential,
	}

	totalValue := decimal.Zero
	items := make([]taxcalcdomain.TaxCalculationItem, len(req.Items))
	for i, in := range req.Items {
		rate := rates[strings.TrimSpace(in.TRHSCode)]

		cif := values[i].Add(transportShares[i]).Add(insuranceShares[i]).Add(storageShares[i])

		// Cascade in strict order; each base includes all prior components.
		customsTax := money.Round2(cif.Mul(rate.EffectiveCustomsTaxPercent(req.Preferential)))
		additionalCustomsTax := money.Round2(cif.Mul(rate.AdditionalCustomsTaxPercent))
		kkdf := money.Round2(cif.Mul(rate.KKDFPercent))
		vatBase := cif.Add(customsTax).Add(additionalCustomsTax).Add(kkdf)
		vat := money.Round2(vatBase.Mul(rate.VATPercent))

		totalTaxTL := customsTax.Add(additionalCustomsTax).Add(kkdf).Add(vat).Add(stampShares[i])
		totalTaxUSD := money.Round2(totalTaxTL.Div(req.CurrencyRate))

		items[i] = taxcalcdomain.TaxCalculationItem{
			ID:            s.genID.Generate(),
			CalculationID: calc.ID,

			HTSCode:         strings.TrimSpace(in.HTSCode),
			TRHSCode:        strings.TrimSpace(in.TRHSCode),
			CountryOfOrigin: strings.ToUpper(strings.TrimSpace(in.CountryOfOrigin)),
			Style:           strings.TrimSpace(in.Style),
			Color:           strings.TrimSpace(in.Color),
			Category:        strings.TrimSpace(in.Category),
			Description:     strings.TrimSpace(in.Description),
			FabricContent:   strings.TrimSpace(in.FabricContent),

			Cost:       in.Cost,
			UnitCount:  in.UnitCount,
			TotalValue: values[i],

			TransportShare: transportShares[i],
			InsuranceShare: insuranceShares[i],
			StorageShare:   storageShares[i],
			CIFValue:       cif,

			CustomsTaxPercent:           rate.EffectiveCustomsTaxPercent(req.Preferential),
			AdditionalCustomsTaxPercent: rate.AdditionalCustomsTaxPercent,
			KKDFPercent:                 rate.KKDFPercent,
			VATPercent:                  rate.VATPercent,

			CustomsTax:           customsTax,
			AdditionalCustomsTax: additionalCustomsTax,
			KKDF:                 kkdf,
			VATBase:              vatBase,
			VAT:                  vat,

			TotalTaxTL:  totalTaxTL,
			TotalTaxUSD: totalTaxUSD,

			Requirements: rate.Requirements(),
		}
		totalValue = totalValue.Add(values[i])
	}
	calc.TotalValue = totalValue

	if err := s.repo.ReplaceCalculation(ctx, shipment.ID, shipment.CalcVersion, calc, items); err != nil {
		return nil, err
	}

	s.log.Info("tax calculation stored",
		zap.String("reference", reference),
		zap.String("method", string(method)),
		zap.Int("items", len(items)),
		zap.Bool("preferential", req.Preferential),
	)

	return toResponse(calc, items), nil
}

func (s *Service) GetByReference(ctx context.Context, reference string) (*taxcalcdomain.CalculationResponse, error) {
	calc, items, err := s.repo.FindByReference(ctx, strings.TrimSpace(reference))
	if err != nil {
		return nil, err
	}
	if calc == nil {
		return nil, taxcalcdomain.ErrNotFound
	}
	return toResponse(calc, items), nil
}

func toResponse(calc *taxcalcdomain.TaxCalculation, items []taxcalcdomain.TaxCalculationItem) *taxcalcdomain.CalculationResponse {
	resp := &taxcalcdomain.CalculationResponse{
		ID:            calc.ID.String(),
		Reference:     calc.Reference,
		InvoiceNo:     calc.InvoiceNo,
		InvoiceDate:   calc.InvoiceDate,
		TotalValue:    calc.TotalValue,
		TotalQuantity: calc.TotalQuantity,
		TransportCost: calc.TransportCost,
		InsuranceCost: calc.InsuranceCost,
		StorageCost:   calc.StorageCost,
		Method:        calc.Method,
		CurrencyRate:  calc.CurrencyRate,
		StampTax:      calc.StampTax,
		Preferential:  calc.Preferential,
		Items:         make([]taxcalcdomain.ItemResponse, 0, len(items)),
		CreatedAt:     calc.CreatedAt,
	}

	for _, item := range items {
		vatBaseExKKDF := item.VATBase.Sub(item.KKDF)
		resp.Items = append(resp.Items, taxcalcdomain.ItemResponse{
			ID:              item.ID.String(),
			HTSCode:         item.HTSCode,
			TRHSCode:        item.TRHSCode,
			CountryOfOrigin: item.CountryOfOrigin,
			Style:           item.Style,
			Color:           item.Color,
			Category:        item.Category,
			Description:     item.Description,
			FabricContent:   item.FabricContent,

			Cost:       item.Cost,
			UnitCount:  item.UnitCount,
			TotalValue: item.TotalValue,

			TransportShare: item.TransportShare,
			InsuranceShare: item.InsuranceShare,
			StorageShare:   item.StorageShare,
			CIFValue:       item.CIFValue,

			CustomsTaxPercent:           item.CustomsTaxPercent,
			AdditionalCustomsTaxPercent: item.AdditionalCustomsTaxPercent,
			KKDFPercent:                 item.KKDFPercent,
			VATPercent:                  item.VATPercent,

			CustomsTax:           item.CustomsTax,
			AdditionalCustomsTax: item.AdditionalCustomsTax,
			KKDF:                 item.KKDF,
			VATBase:              item.VATBase,
			VAT:                  item.VAT,

			VATBaseExcludingKKDF: vatBaseExKKDF,
			VATExcludingKKDF:     money.Round2(vatBaseExKKDF.Mul(item.VATPercent)),

			TotalTaxTL:  item.TotalTaxTL,
			TotalTaxUSD: item.TotalTaxUSD,

			Requirements: item.Requirements,
		})

		resp.TotalCustomsTax = resp.TotalCustomsTax.Add(item.CustomsTax)
		resp.TotalAdditionalCustomsTax = resp.TotalAdditionalCustomsTax.Add(item.AdditionalCustomsTax)
		resp.TotalKKDF = resp.TotalKKDF.Add(item.KKDF)
		resp.TotalVAT = resp.TotalVAT.Add(item.VAT)
		resp.TotalTaxTL = resp.TotalTaxTL.Add(item.TotalTaxTL)
		resp.TotalTaxUSD = resp.TotalTaxUSD.Add(item.TotalTaxUSD)
	}

	return resp
}
