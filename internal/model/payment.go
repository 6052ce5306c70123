package model

// PaymentDetails tells patrons where to send money before submitting a
// booking.  Payment happens off-platform; only the reference is recorded.
type PaymentDetails struct {
    Bank        BankAccount `json:"bank"`
    MobileMoney MobileMoney `json:"mobile_money"`
}

// BankAccount is a bank transfer destination.
type BankAccount struct {
    BankName      string `json:"bank_name"`
    AccountNumber string `json:"account_number"`
    AccountName   string `json:"account_name"`
}

// MobileMoney is a mobile-money transfer destination.
type MobileMoney struct {
    Number string `json:"number"`
    Name   string `json:"name"`
}
