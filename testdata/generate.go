//go:build ignore

package main

import (
	"log"
	"os"

	"github.com/parquet-go/parquet-go"
)

type OrderLine struct {
	OrderID  int64   `parquet:"order_id"`
	Customer string  `parquet:"customer"`
	City     string  `parquet:"city"`
	SKU      string  `parquet:"sku"`
	Qty      int64   `parquet:"qty"`
	Price    float64 `parquet:"price"`
}

func main() {
	lines := []OrderLine{
		{OrderID: 1, Customer: "alice", City: "Paris", SKU: "A-1", Qty: 2, Price: 9.5},
		{OrderID: 1, Customer: "alice", City: "Paris", SKU: "B-2", Qty: 1, Price: 20},
		{OrderID: 2, Customer: "bob", City: "Oslo", SKU: "A-1", Qty: 5, Price: 9.5},
		{OrderID: 3, Customer: "alice", City: "Paris", SKU: "C-3", Qty: 1, Price: 4.25},
		{OrderID: 3, Customer: "alice", City: "Paris", SKU: "A-1", Qty: 1, Price: 9.5},
	}

	file, err := os.Create("catalogue.parquet")
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[OrderLine](file)
	if _, err := writer.Write(lines); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}

	log.Printf("Generated catalogue.parquet with %d order lines", len(lines))
}
