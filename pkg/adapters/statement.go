package adapters

import (
	"github.com/de-tools/statement-atlas/pkg/models/api"
	"github.com/de-tools/statement-atlas/pkg/models/domain"
	"github.com/de-tools/statement-atlas/pkg/models/store"
)

func MapStoreLineItemToDomain(li store.LineItem) domain.LineItem {
	return domain.LineItem{
		AccountID:   li.AccountID,
		AccountName: li.AccountName,
		Value:       li.Value,
		Period:      li.Period,
	}
}

func MapDomainLineItemToStore(statement string, position int, li domain.LineItem) store.LineItem {
	return store.LineItem{
		Statement:   statement,
		Position:    position,
		Period:      li.Period,
		AccountID:   li.AccountID,
		AccountName: li.AccountName,
		Value:       li.Value,
	}
}

func MapDomainReportToAPI(r *domain.ReportResult) *api.Report {
	if r == nil {
		return nil
	}

	data := make([]api.LineItem, 0, len(r.Data))
	for _, li := range r.Data {
		data = append(data, api.LineItem{
			AccountID:   li.AccountID,
			AccountName: li.AccountName,
			Value:       li.Value,
			Period:      li.Period,
		})
	}

	return &api.Report{
		ReportType: r.ReportType,
		Period:     r.Period,
		Data:       data,
		Metadata: api.ReportMetadata{
			GeneratedAt: r.Metadata.GeneratedAt,
			TotalValue:  r.Metadata.TotalValue,
		},
	}
}
