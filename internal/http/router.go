package http

import (
	"invoice-backend/internal/handlers"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	itemHandler *handlers.ItemHandler,
	customerHandler *handlers.CustomerHandler,
	invoiceHandler *handlers.InvoiceHandler,
	exportHandler *handlers.ExportHandler,
	sellerHandler *handlers.SellerHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// API routes - Items (the reusable billing catalog)
	itemsAPI := r.PathPrefix("/api/items").Subrouter()
	itemsAPI.HandleFunc("", itemHandler.ListItems).Methods("GET")
	itemsAPI.HandleFunc("", itemHandler.CreateItem).Methods("POST")
	itemsAPI.HandleFunc("/{id}", itemHandler.GetItem).Methods("GET")
	itemsAPI.HandleFunc("/{id}", itemHandler.UpdateItem).Methods("PUT")
	itemsAPI.HandleFunc("/{id}", itemHandler.DeleteItem).Methods("DELETE")

	// API routes - Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}", customerHandler.DeleteCustomer).Methods("DELETE")

	// API routes - Invoices
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.HandleFunc("", invoiceHandler.ListInvoices).Methods("GET")
	invoicesAPI.HandleFunc("", invoiceHandler.CreateInvoice).Methods("POST")
	invoicesAPI.HandleFunc("/number/{number}", invoiceHandler.GetInvoiceByNumber).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.GetInvoice).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.UpdateInvoice).Methods("PUT")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.DeleteInvoice).Methods("DELETE")
	invoicesAPI.HandleFunc("/{id}/pdf", invoiceHandler.DownloadPDF).Methods("GET")
	invoicesAPI.HandleFunc("/{id}/csv", invoiceHandler.DownloadCSV).Methods("GET")
	invoicesAPI.HandleFunc("/{id}/print", invoiceHandler.PrintInvoice).Methods("POST")

	// API routes - Bulk export / import
	exportAPI := r.PathPrefix("/api/export").Subrouter()
	exportAPI.HandleFunc("/json", exportHandler.ExportJSON).Methods("GET")
	exportAPI.HandleFunc("/csv", exportHandler.ExportCSV).Methods("GET")

	importAPI := r.PathPrefix("/api/import").Subrouter()
	importAPI.HandleFunc("/json", exportHandler.ImportJSON).Methods("POST")
	importAPI.HandleFunc("/csv", exportHandler.ImportCSV).Methods("POST")

	// API routes - Seller record
	r.HandleFunc("/api/seller", sellerHandler.GetSeller).Methods("GET")
	r.HandleFunc("/api/seller", sellerHandler.UpdateSeller).Methods("PUT")

	// Health endpoints (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
