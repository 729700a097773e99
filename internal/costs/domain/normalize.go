package domain

import (
	"github.com/smallbiznis/meterdash/internal/metering"
	"github.com/smallbiznis/meterdash/internal/productname"
)

const usageProductType = "UsageProductListItem"

// Normalize rolls raw breakdown buckets up into per-bucket dimension and
// product sums. Only positive usage-product lines participate; credits,
// adjustments and composite charges are left out of the roll-ups.
func Normalize(buckets []metering.UsageBreakdown) NormalizedCosts {
	out := NormalizedCosts{
		Products: ProductGroupValues{},
		Items:    make([]BucketSummary, 0, len(buckets)),
	}

	for _, bucket := range buckets {
		if len(bucket.LineItems) == 0 {
			continue
		}

		dimensionSums := map[string]float64{}
		productSums := map[string]float64{}

		for _, line := range bucket.LineItems {
			if line.Total < 0 || line.ProductType != usageProductType {
				continue
			}

			name := productname.Normalize(line.Name)
			// Last processed line labels the whole run.
			out.CurrencyName = line.CreditTypeName

			// A value present under the same key in both maps is
			// counted twice. Upstream does not emit such overlaps.
			for _, groups := range []map[string]string{line.PricingGroupValues, line.PresentationGroupValues} {
				for key, value := range groups {
					dimensionSums[value] += line.Total
					out.recordGroupValue(name, key, value)
				}
			}
			productSums[name] += line.Total
		}

		values := make(map[string]float64, len(dimensionSums)+len(productSums))
		for k, v := range dimensionSums {
			values[k] = v
		}
		for k, v := range productSums {
			values[k] = v
		}

		out.Items = append(out.Items, BucketSummary{
			Total:       bucket.Total,
			PeriodStart: bucket.PeriodStart,
			Type:        bucket.Type,
			LineItems:   bucket.LineItems,
			Values:      values,
		})
	}

	return out
}

func (n *NormalizedCosts) recordGroupValue(product, key, value string) {
	keys, ok := n.Products[product]
	if !ok {
		keys = map[string][]string{}
		n.Products[product] = keys
	}
	for _, existing := range keys[key] {
		if existing == value {
			return
		}
	}
	keys[key] = append(keys[key], value)
}
