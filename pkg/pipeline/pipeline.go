// Package pipeline drives rows end to end: raw record, normalizers,
// optional ambiguity resolution, anomaly detection, output collections.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/ipamops/invnorm/pkg/inventory"
	"github.com/ipamops/invnorm/pkg/resolve"
)

// Pipeline processes one batch of inventory rows.
type Pipeline struct {
	resolver *resolve.Protocol
	logger   *zap.SugaredLogger
}

// New builds a pipeline around a resolution protocol.
func New(resolver *resolve.Protocol, logger *zap.SugaredLogger) *Pipeline {
	return &Pipeline{resolver: resolver, logger: logger}
}

// Result summarizes one batch run.
type Result struct {
	Rows      int
	Anomalies int
}

// ProcessRow takes one raw row through normalization, resolution and
// anomaly detection. index is 1-based and serves as the row-id fallback.
// The returned record is complete; partial records are never produced.
func (p *Pipeline) ProcessRow(ctx context.Context, index int, raw inventory.RawRecord) (inventory.NormalizedRecord, []inventory.Anomaly) {
	var steps inventory.Steps

	ip := inventory.NormalizeIP(raw.First(inventory.IPColumns...), &steps)
	hostname, hostnameValid := inventory.NormalizeHostname(raw.First(inventory.HostnameColumns...), &steps)
	fqdn, fqdnConsistent := inventory.NormalizeFQDN(raw.First(inventory.FQDNColumns...), hostname, &steps)
	mac, macValid := inventory.NormalizeMAC(raw.First(inventory.MACColumns...), &steps)
	owner, ownerEmail, ownerTeam := inventory.ExtractOwner(raw.First(inventory.OwnerColumns...), &steps)
	deviceType, deviceConfidence := inventory.NormalizeDeviceType(raw.First(inventory.DeviceColumns...), &steps)
	site, siteNormalized := inventory.NormalizeSite(raw.First(inventory.SiteColumns...), ip.Valid, &steps)

	rec := inventory.NormalizedRecord{
		SourceRowID:          rowIdentifier(raw, index),
		IP:                   ip.Addr,
		IPValid:              ip.Valid,
		IPVersion:            ip.Version,
		SubnetCIDR:           ip.SubnetCIDR,
		Hostname:             hostname,
		HostnameValid:        hostnameValid,
		FQDN:                 fqdn,
		FQDNConsistent:       fqdnConsistent,
		ReversePtr:           ip.ReversePtr,
		MAC:                  mac,
		MACValid:             macValid,
		Owner:                owner,
		OwnerEmail:           ownerEmail,
		OwnerTeam:            ownerTeam,
		DeviceType:           deviceType,
		DeviceTypeConfidence: deviceConfidence,
		Site:                 site,
		SiteNormalized:       siteNormalized,
		Notes:                inventory.ExtractNotes(raw),
	}

	if p.resolver != nil {
		if err := p.resolver.Apply(ctx, raw, &rec, &steps); err != nil {
			p.logger.Errorf("audit write failed for row %s: %v", rec.SourceRowID, err)
		}
	}

	steps.Add("row_processing_completed")
	rec.NormalizationSteps = steps.String()
	return rec, inventory.DetectAnomalies(rec)
}

// Run reads the input, processes every row in order, and writes both
// output collections. Field-level failures never abort the batch.
func (p *Pipeline) Run(ctx context.Context, inputPath, cleanPath, anomaliesPath string) (Result, error) {
	rows, err := ReadRaw(inputPath)
	if err != nil {
		return Result{}, err
	}
	p.logger.Infof("processing %d rows from %s", len(rows), inputPath)

	records := make([]inventory.NormalizedRecord, 0, len(rows))
	var anomalies []inventory.Anomaly
	for i, raw := range rows {
		rec, issues := p.ProcessRow(ctx, i+1, raw)
		records = append(records, rec)
		anomalies = append(anomalies, issues...)
	}

	if err := WriteClean(cleanPath, records); err != nil {
		return Result{}, err
	}
	if err := WriteAnomalies(anomaliesPath, anomalies); err != nil {
		return Result{}, err
	}
	p.logger.Infof("wrote %d records, %d anomalies", len(records), len(anomalies))
	return Result{Rows: len(records), Anomalies: len(anomalies)}, nil
}
