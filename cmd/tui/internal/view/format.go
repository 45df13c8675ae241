package view

import (
	"context"
	"fmt"
	"time"
)

// Database calls issued from the UI loop get a short deadline so a stalled
// connection never freezes the program.
const dbTimeout = 5 * time.Second

// DbCtx returns the context used for every database call a view makes.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

// FormatAmount renders cents with two decimal places.
func FormatAmount(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
