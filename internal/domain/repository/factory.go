package repository

// Factory describes access to the different domain repositories together with
// the transaction boundary they share.
type Factory interface {
	TxManager
	Customers() CustomerRepository
	Products() ProductRepository
	Orders() OrderRepository
}
