package importer

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

var ErrNotOfx = errors.New("the file does not contain an <OFX> tag")

type ofxDocument struct {
	XMLName      xml.Name         `xml:"OFX"`
	Transactions []ofxTransaction `xml:"BANKMSGSRSV1>STMTTRNRS>STMTRS>BANKTRANLIST>STMTTRN"`
}

type ofxTransaction struct {
	Posted string `xml:"DTPOSTED"`
	Amount string `xml:"TRNAMT"`
	Fitid  string `xml:"FITID"`
	Memo   string `xml:"MEMO"`
}

// ReadOfx reads the bank statement of an OFX file in XML form. Everything
// before the <OFX> tag is ignored. With invert every amount changes sign.
func ReadOfx(path string, invert bool) ([]*PendingTransaction, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open ofx file: %w", err)
	}

	return ParseOfx(string(content), invert)
}

func ParseOfx(content string, invert bool) ([]*PendingTransaction, error) {
	start := strings.Index(content, "<OFX>")
	if start < 0 {
		return nil, ErrNotOfx
	}

	document := &ofxDocument{}
	err := xml.Unmarshal([]byte(content[start:]), document)
	if err != nil {
		return nil, fmt.Errorf("invalid xml content in ofx file: %w", err)
	}

	result := []*PendingTransaction{}
	for i, tr := range document.Transactions {
		pending, err := tr.pending(invert)
		if err != nil {
			return nil, fmt.Errorf("STMTTRN %d: %w", i+1, err)
		}
		result = append(result, pending)
	}

	return result, nil
}

func (tr *ofxTransaction) pending(invert bool) (*PendingTransaction, error) {
	switch {
	case tr.Posted == "":
		return nil, errors.New("DTPOSTED not found")
	case tr.Amount == "":
		return nil, errors.New("TRNAMT not found")
	case tr.Fitid == "":
		return nil, errors.New("FITID not found")
	}

	posted := strings.TrimSpace(tr.Posted)
	if len(posted) > 8 {
		posted = posted[:8]
	}
	postedAt, err := time.Parse("20060102", posted)
	if err != nil {
		return nil, fmt.Errorf("DTPOSTED: %w", err)
	}

	amount, err := parseAmount(tr.Amount)
	if err != nil {
		return nil, fmt.Errorf("TRNAMT: %w", err)
	}
	if invert {
		amount = amount.Neg()
	}

	return &PendingTransaction{
		PostedAt:      postedAt,
		Amount:        amount,
		InstitutionID: strings.TrimSpace(tr.Fitid),
		Memo:          strings.TrimSpace(tr.Memo),
	}, nil
}
