// basketctl analyzes shopping baskets from the command line, against
// either a catalog file or the built-in sample catalog. Useful for
// trying constraint and weight settings without running the server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/greencart/backend/internal/domain"
	"github.com/greencart/backend/internal/infrastructure/catalog"
	"github.com/greencart/backend/internal/infrastructure/classify"
	"github.com/greencart/backend/internal/infrastructure/explain"
	"github.com/greencart/backend/internal/infrastructure/health"
	"github.com/greencart/backend/internal/usecase"
)

type basketFile struct {
	BasketID string       `yaml:"basket_id"`
	UserID   string       `yaml:"user_id"`
	Items    []basketItem `yaml:"items"`
}

type basketItem struct {
	ProductID string  `yaml:"product_id"`
	Name      string  `yaml:"name"`
	Price     float64 `yaml:"price"`
	Quantity  float64 `yaml:"quantity"`
}

var (
	catalogPath   string
	messageType   string
	vegetarian    bool
	vegan         bool
	maxPriceDelta float64
	beamWidth     int
	asJSON        bool
)

func main() {
	root := &cobra.Command{
		Use:   "basketctl",
		Short: "Analyze shopping baskets for greenhouse gas impact",
	}

	analyze := &cobra.Command{
		Use:   "analyze <basket.yaml>",
		Short: "Score a basket and suggest lower-emission swaps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args[0])
		},
	}
	analyze.Flags().StringVar(&catalogPath, "catalog", "", "catalog YAML file (default: built-in sample catalog)")
	analyze.Flags().StringVar(&messageType, "message-type", domain.MessageConversational, "explanation style: numeric or conversational")
	analyze.Flags().BoolVar(&vegetarian, "vegetarian", false, "only consider vegetarian substitutes")
	analyze.Flags().BoolVar(&vegan, "vegan", false, "only consider vegan substitutes")
	analyze.Flags().Float64Var(&maxPriceDelta, "max-price-delta", 0, "max relative basket cost increase (0 = default 3%)")
	analyze.Flags().IntVar(&beamWidth, "beam-width", 0, "beam width for the substitution search (0 = default)")
	analyze.Flags().BoolVar(&asJSON, "json", false, "print the raw result as JSON")

	root.AddCommand(analyze)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAnalyze(ctx context.Context, path string) error {
	basket, err := readBasket(path)
	if err != nil {
		return err
	}

	var (
		products   *catalog.ProductStore
		footprints *catalog.FootprintTable
	)
	if catalogPath != "" {
		products, footprints, err = catalog.LoadFile(catalogPath)
		if err != nil {
			return err
		}
	} else {
		byID, byCategory := catalog.SampleFootprints()
		products = catalog.NewProductStore(catalog.SampleProducts())
		footprints = catalog.NewFootprintTable(byID, byCategory)
	}

	classifier := classify.NewRuleClassifier(classify.DefaultRules(), classify.DefaultFallback)
	emissions := usecase.NewEmissionsService(footprints, classifier, usecase.EmissionsConfig{}, nil)
	substitutes := usecase.NewSubstituteService(products, usecase.SubstituteConfig{}, nil)
	optimizer := usecase.NewOptimizerService(substitutes, products, usecase.OptimizerConfig{
		BeamWidth:     beamWidth,
		MaxPriceDelta: maxPriceDelta,
	}, nil)
	acceptance := usecase.NewAcceptanceService(nil, nil)
	checkout := usecase.NewCheckoutService(
		emissions, substitutes, optimizer, acceptance,
		products, health.NewCategoryScorer(nil), nil,
		usecase.CheckoutConfig{MessageType: messageType},
		nil,
	)

	constraints := domain.Constraints{
		Vegetarian: vegetarian,
		Vegan:      vegan,
	}
	if maxPriceDelta > 0 {
		constraints.MaxPriceDelta = &maxPriceDelta
	}

	result, err := checkout.Analyze(ctx, basket, constraints, domain.DefaultUserContext())
	if err != nil {
		return err
	}

	if asJSON {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
		return nil
	}

	explanation, err := explain.NewTemplateGenerator(messageType).Generate(ctx, basket, result)
	if err != nil {
		return err
	}
	fmt.Println(explanation)
	fmt.Printf("\nemissions: %.2f kg CO2e (optimized %.2f, gap %.1f%%)\n",
		result.Emissions, result.EmissionsOptimized, result.COGRatio*100)
	fmt.Printf("behavior-adjusted saving: %.2f kg CO2e at %.0f%% expected acceptance\n",
		result.BAE, result.AcceptanceRate*100)
	return nil
}

func readBasket(path string) (domain.Basket, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Basket{}, fmt.Errorf("reading basket file: %w", err)
	}

	var file basketFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Basket{}, fmt.Errorf("parsing basket file %s: %w", path, err)
	}

	basket := domain.Basket{ID: file.BasketID, UserID: file.UserID}
	for _, item := range file.Items {
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		basket.Items = append(basket.Items, domain.Product{
			ID:       item.ProductID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: quantity,
		})
	}
	return basket, nil
}
