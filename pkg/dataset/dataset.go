// Package dataset wires the transform library into one fixed cleaning
// pipeline per dataset type. The stage orders are contracts: row filters
// must see standardized, corrected values, and schema-changing stages must
// run before anything that references the old or new column names.
package dataset

import (
	"context"
	"fmt"

	m "github.com/mopbucket/mop/pkg/mop"
	"github.com/mopbucket/mop/pkg/transform/dates"
	"github.com/mopbucket/mop/pkg/transform/nulls"
	"github.com/mopbucket/mop/pkg/transform/quantity"
	"github.com/mopbucket/mop/pkg/transform/scrub"
	"github.com/mopbucket/mop/pkg/transform/shape"
	"github.com/mopbucket/mop/pkg/transform/validrows"
)

// Type selects which pipeline configuration applies to a table.
type Type int

const (
	Unknown Type = iota
	User
	Card
	Store
	Product
	Order
	DateEvent
)

func (t Type) String() string {
	switch t {
	case User:
		return "user"
	case Card:
		return "card"
	case Store:
		return "store"
	case Product:
		return "product"
	case Order:
		return "order"
	case DateEvent:
		return "date_event"
	default:
		return "unknown"
	}
}

// ParseType maps a config string to a Type. Unrecognized names are a
// configuration error.
func ParseType(s string) (Type, error) {
	switch s {
	case "user", "users":
		return User, nil
	case "card", "cards":
		return Card, nil
	case "store", "stores":
		return Store, nil
	case "product", "products":
		return Product, nil
	case "order", "orders":
		return Order, nil
	case "date_event", "date_events", "dates":
		return DateEvent, nil
	default:
		return Unknown, fmt.Errorf("unknown dataset type %q", s)
	}
}

// WebStoreCode is the web channel's pseudo-store row, which legitimately
// lacks the physical-store fields and must survive store filtering.
const WebStoreCode = "WEB-1388012W"

// cardMask is the data-entry artifact stripped from card numbers.
var cardMask = []string{"?"}

// priceMarks is stripped from product prices before the numeric cast.
var priceMarks = []string{"£"}

// Build returns the cleaning pipeline for a dataset type. Every pipeline
// begins with a required-column guard so a partial schema fails the run
// instead of silently producing a partial clean.
func Build(t Type) (*m.Pipeline, error) {
	switch t {
	case User:
		return m.NewPipeline().
			Add(&shape.Require{Columns: []string{"address", "country", "country_code", "phone_number", "date_of_birth", "join_date"}}).
			Add(&nulls.Standardize{}).
			Add(&scrub.Address{Column: "address"}).
			Add(&scrub.Country{Column: "country"}).
			Add(&scrub.CountryCode{Column: "country_code"}).
			Add(&scrub.Phone{Column: "phone_number"}).
			Add(&dates.Normalize{Columns: []string{"date_of_birth", "join_date"}}).
			Add(&validrows.Filter{}), nil
	case Card:
		return m.NewPipeline().
			Add(&shape.Require{Columns: []string{"card_number", "date_payment_confirmed"}}).
			Add(&nulls.Standardize{}).
			Add(&dates.Normalize{Columns: []string{"date_payment_confirmed"}}).
			Add(&validrows.Filter{}).
			Add(&scrub.StripMarks{Column: "card_number", Marks: cardMask}), nil
	case Store:
		return m.NewPipeline().
			Add(&shape.Require{Columns: []string{"address", "latitude", "opening_date", "store_type", "country_code", "continent", "locality", "store_code", "staff_numbers"}}).
			Add(&nulls.Standardize{}).
			Add(&scrub.Address{Column: "address"}).
			Add(&shape.MergeFirst{Primary: "latitude", Secondary: "lat"}).
			Add(&dates.Normalize{Columns: []string{"opening_date"}}).
			Add(&scrub.Categorical{Column: "store_type"}).
			Add(&scrub.CountryCode{Column: "country_code"}).
			Add(&scrub.Continent{Column: "continent"}).
			Add(&scrub.Locality{Column: "locality"}).
			Add(&scrub.StaffCount{Column: "staff_numbers"}).
			Add(&validrows.Filter{KeyColumn: "store_code", ExemptValue: WebStoreCode}), nil
	case Product:
		return m.NewPipeline().
			Add(&shape.Require{Columns: []string{"product_price", "weight", "date_added"}}).
			Add(&nulls.Standardize{}).
			Add(&validrows.Filter{}).
			Add(&quantity.NormalizeWeight{Column: "weight", Out: "weight_kg"}).
			Add(&scrub.StripMarks{Column: "product_price", Marks: priceMarks}).
			Add(&shape.NumericCast{Column: "product_price", To: m.KindFloat}).
			Add(&shape.Rename{From: "product_price", To: "product_price_gbp"}).
			Add(&dates.Normalize{Columns: []string{"date_added"}}), nil
	case Order:
		return m.NewPipeline().
			Add(&shape.Require{Columns: []string{"product_quantity"}}).
			Add(&nulls.Standardize{}).
			Add(&validrows.Filter{}).
			Add(&shape.Drop{Columns: []string{"first_name", "last_name", "1"}}).
			Add(&shape.NumericCast{Column: "product_quantity", To: m.KindInt}), nil
	case DateEvent:
		return m.NewPipeline().
			Add(&shape.Require{Columns: []string{"timestamp", "month", "year", "day", "time_period", "date_uuid"}}).
			Add(&nulls.Standardize{}).
			Add(&validrows.DropMissing{Columns: []string{"timestamp", "day", "month", "year"}}).
			Add(&validrows.Filter{}).
			Add(&dates.Combine{Year: "year", Month: "month", Day: "day", Timestamp: "timestamp", Out: "datetime"}), nil
	default:
		return nil, fmt.Errorf("no pipeline for dataset type %q", t)
	}
}

// Clean builds and runs the pipeline for t over one frame.
func Clean(ctx context.Context, t Type, f *m.Frame) (*m.Frame, m.Report, error) {
	p, err := Build(t)
	if err != nil {
		return nil, m.Report{}, err
	}
	return p.Run(ctx, f)
}
