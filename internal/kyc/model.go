package kyc

// Submission carries the four steps of the verification form. No real
// verification happens; a structurally complete submission marks the user as
// verified.
type Submission struct {
	Personal   Personal   `json:"personal"`
	Contact    Contact    `json:"contact"`
	Documents  Documents  `json:"documents"`
	Additional Additional `json:"additional"`
}

// Personal is step one of the form.
type Personal struct {
	FullName    string `json:"full_name"`
	DateOfBirth string `json:"date_of_birth"`
	Nationality string `json:"nationality"`
	Gender      string `json:"gender"`
}

// Contact is step two.
type Contact struct {
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// Documents is step three; file fields hold uploaded object names, not bytes.
type Documents struct {
	IDType   string `json:"id_type"`
	IDNumber string `json:"id_number"`
	IDFront  string `json:"id_front"`
	IDBack   string `json:"id_back"`
	Selfie   string `json:"selfie"`
}

// Additional is step four.
type Additional struct {
	Occupation       string `json:"occupation"`
	SourceOfFunds    string `json:"source_of_funds"`
	PurposeOfAccount string `json:"purpose_of_account"`
}
