package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/invoicebot/backend/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	customerCollection = "customer_data"
	productCollection  = "product_data"

	// missSampleSize bounds the diagnostic sample logged on a lookup miss
	missSampleSize = 3
)

// MongoCatalog reads customer and product records from the shared MongoDB
// catalog. The store is narrowed server-side with an anchored, quoted pattern
// built from the normalized query; the functional match contract stays
// NamesEqual, verified on the fetched record.
type MongoCatalog struct {
	customers          *mongo.Collection
	products           *mongo.Collection
	enableDebugLogging bool
}

// NewMongoCatalog creates a catalog backed by the given database handle.
// The handle's lifecycle belongs to the caller; the catalog never closes it.
func NewMongoCatalog(db *mongo.Database, enableDebugLogging bool) *MongoCatalog {
	return &MongoCatalog{
		customers:          db.Collection(customerCollection),
		products:           db.Collection(productCollection),
		enableDebugLogging: enableDebugLogging,
	}
}

// Dial connects to MongoDB and verifies the connection with a ping.
// Disconnecting is the caller's responsibility.
func Dial(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: ping: %v", domain.ErrCatalogUnavailable, err)
	}
	return client, nil
}

// customerDoc mirrors the stored customer schema
type customerDoc struct {
	Name    string      `bson:"Name"`
	Number  interface{} `bson:"Number"`
	Address string      `bson:"Address"`
}

// productDoc mirrors the stored product schema
type productDoc struct {
	Name        string  `bson:"name"`
	UnitPrice   float64 `bson:"unit_price"`
	MRP         float64 `bson:"mrp"`
	Description string  `bson:"description"`
	Seller      string  `bson:"seller"`
}

// FindCustomer looks up a customer by normalized name. A miss is (nil, nil);
// store failures are wrapped in domain.ErrCatalogUnavailable.
func (c *MongoCatalog) FindCustomer(ctx context.Context, name string) (*domain.Customer, error) {
	normalized := NormalizeName(name)
	if c.enableDebugLogging {
		log.Printf("[CATALOG] Customer lookup: %q (normalized: %q)", name, normalized)
	}

	var doc customerDoc
	err := c.customers.FindOne(ctx, bson.M{"Name": anchoredNameFilter(normalized)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.logMissSample(ctx, c.customers, "Name")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find customer %q: %v", domain.ErrCatalogUnavailable, normalized, err)
	}

	if !NamesEqual(doc.Name, normalized) {
		log.Printf("[CATALOG] Discarding near-match %q for customer query %q", doc.Name, normalized)
		return nil, nil
	}

	return &domain.Customer{
		Name:    doc.Name,
		Phone:   formatPhone(doc.Number),
		Address: doc.Address,
	}, nil
}

// FindProduct looks up a product by normalized name. A miss is (nil, nil);
// store failures are wrapped in domain.ErrCatalogUnavailable.
func (c *MongoCatalog) FindProduct(ctx context.Context, name string) (*domain.Product, error) {
	normalized := NormalizeName(name)
	if c.enableDebugLogging {
		log.Printf("[CATALOG] Product lookup: %q (normalized: %q)", name, normalized)
	}

	var doc productDoc
	err := c.products.FindOne(ctx, bson.M{"name": anchoredNameFilter(normalized)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.logMissSample(ctx, c.products, "name")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find product %q: %v", domain.ErrCatalogUnavailable, normalized, err)
	}

	if !NamesEqual(doc.Name, normalized) {
		log.Printf("[CATALOG] Discarding near-match %q for product query %q", doc.Name, normalized)
		return nil, nil
	}

	return &domain.Product{
		Name:        doc.Name,
		UnitPrice:   decimal.NewFromFloat(doc.UnitPrice),
		MRP:         decimal.NewFromFloat(doc.MRP),
		Description: doc.Description,
		Seller:      doc.Seller,
	}, nil
}

// anchoredNameFilter builds the server-side narrowing pattern: the quoted
// normalized query, anchored at both ends, with internal spaces widened to
// whitespace runs. Everything user-supplied is quoted, so no pattern syntax
// leaks into the query.
func anchoredNameFilter(normalized string) primitive.Regex {
	pattern := `^\s*` + strings.ReplaceAll(regexp.QuoteMeta(normalized), " ", `\s+`) + `\s*$`
	return primitive.Regex{Pattern: pattern, Options: "i"}
}

// formatPhone renders the stored phone field, which older imports left as a
// long, newer ones as a string.
func formatPhone(number interface{}) string {
	switch v := number.(type) {
	case nil:
		return ""
	case string:
		return v
	case int32:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// logMissSample logs a few stored names after a miss so operators can spot
// casing or spelling drift. Diagnostic only: failures here never affect the
// lookup result.
func (c *MongoCatalog) logMissSample(ctx context.Context, coll *mongo.Collection, nameField string) {
	cursor, err := coll.Find(ctx, bson.D{}, options.Find().SetLimit(missSampleSize))
	if err != nil {
		log.Printf("[CATALOG] Miss sample unavailable for %s: %v", coll.Name(), err)
		return
	}
	defer cursor.Close(ctx)

	var sample []string
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		if name, ok := doc[nameField].(string); ok {
			sample = append(sample, name)
		}
	}
	log.Printf("[CATALOG] No match in %s; sample entries: %v", coll.Name(), sample)
}
