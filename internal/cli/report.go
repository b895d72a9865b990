package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gostorefront/cart-backend/internal/infrastructure/config"
	"github.com/gostorefront/cart-backend/internal/infrastructure/storage"
)

// RunReport prints the persisted cart from the configured database.
func RunReport(flags *ReportFlags) error {
	cfg := config.LoadOrEnvWithPath(flags.ConfigPath)

	if cfg.Storage.Driver != "sqlite" {
		return fmt.Errorf("cart-report requires the sqlite store, configured driver is %q", cfg.Storage.Driver)
	}

	store, err := storage.NewStorage(cfg.Storage.DatabasePath, nil)
	if err != nil {
		return fmt.Errorf("failed to open cart store: %w", err)
	}
	defer store.Close()

	state, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	if flags.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	}

	fmt.Printf("Cart Report (%s)\n", cfg.Storage.DatabasePath)
	fmt.Println("========================================")

	if state.IsEmpty() {
		fmt.Println("Cart is empty.")
		return nil
	}

	for _, item := range state.Items {
		fmt.Printf("  %dx %s", item.Quantity, item.Title)
		if len(item.SelectedVariation) > 0 {
			fmt.Printf(" %v", item.SelectedVariation)
		}
		fmt.Printf("  $%.2f\n", item.LineTotal())
	}

	fmt.Println("----------------------------------------")
	fmt.Printf("  %d line item(s), %d unit(s)\n", len(state.Items), state.TotalQuantity())
	fmt.Printf("  Subtotal: $%.2f\n", state.Subtotal)

	return nil
}
