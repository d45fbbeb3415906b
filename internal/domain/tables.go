package domain

var Tables = []interface{}{
	// Accounts
	&Profile{},
	// Catalog
	&Product{},
	&Location{},
	// Supply chain
	&Transaction{},
	&LogisticsDetail{},
	// Dashboard
	&Notification{},
	&Report{},
}
