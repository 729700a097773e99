package domain

import (
	"github.com/smallbiznis/meterdash/internal/metering"
	"github.com/smallbiznis/meterdash/internal/productname"
)

// cpuConversionProductType marks synthetic conversion lines the upstream
// emits when CPU credits are converted to currency. They never appear as a
// product of their own and count as overage only while uncommitted.
const cpuConversionProductType = "cpu_conversion"

// Classify splits draft-invoice lines into balance drawdown (covered by an
// applied commit or credit) and overage (billed on top). Only positive lines
// count; zero and negative lines are ignored entirely.
func Classify(invoices []metering.DraftInvoice) Classification {
	out := Classification{
		TotalByCurrency:         map[string]float64{},
		ProductTotals:           map[string]ProductSpend{},
		CommitApplicationTotals: map[string]float64{},
	}

	for _, invoice := range invoices {
		for _, line := range invoice.LineItems {
			if line.Total <= 0 {
				continue
			}

			out.TotalByCurrency[line.CreditTypeName] += line.Total

			name := productname.Normalize(line.Name)
			hasCommit := line.AppliedCommitOrCredit != nil && line.AppliedCommitOrCredit.ID != ""

			if line.ProductType != cpuConversionProductType {
				product := out.ProductTotals[name]
				product.Total += line.Total
				if hasCommit {
					product.BalanceDrawdown += line.Total
				} else {
					product.Overages += line.Total
				}
				// Every line overwrites the type, so a product priced
				// under mixed types keeps the last one seen.
				product.Type = line.ProductType
				out.ProductTotals[name] = product
			}

			// A line lands in exactly one commit-application bucket.
			// Committed lines always draw down the balance; uncommitted
			// lines only count here when they are conversion lines.
			if hasCommit {
				out.CommitApplicationTotals[KeyBalanceDrawdown] += line.Total
			} else if line.ProductType == cpuConversionProductType {
				out.CommitApplicationTotals[KeyOverages] += line.Total
			}
		}
	}

	return out
}
