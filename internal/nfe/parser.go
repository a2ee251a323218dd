package nfe

import (
	"regexp"
	"strings"
)

// Parse warnings. WarnMissingAccessKey and WarnRecipientNoID do not, on their
// own, make a document unreadable.
const (
	WarnMissingAccessKey = "access key not found: no chNFe element and no 44-digit infNFe Id"
	WarnMalformed        = "document is not well-formed XML; fields were read with the tolerant scanner"
	WarnMissingHeader    = "header (ide) not found"
	WarnMissingIssuer    = "issuer (emit) not found"
	WarnMissingIssuerID  = "issuer (emit) has no CNPJ/CPF"
	WarnRecipientNoID    = "recipient (dest) has no CNPJ/CPF"
	WarnNoLines          = "no line items (det) found"
	WarnMissingTotals    = "totals (total/ICMSTot) not found"
)

var (
	accessKeyPattern = regexp.MustCompile(`^\d{44}$`)
	embeddedKey      = regexp.MustCompile(`\d{44}`)
)

// gtinAbsent is the literal NF-e emitters use for products without a barcode.
const gtinAbsent = "SEM GTIN"

// Parse reads an NF-e document. It never fails: anything it cannot find is
// left empty and explained in Invoice.Warnings.
func Parse(raw string) *Invoice {
	root, err := decodeSchema(raw)
	malformed := err != nil
	if malformed || root.infNFe() == nil {
		root = decodeMarkup(raw)
	}

	inv := &Invoice{
		Lines:        []Line{},
		Installments: []Installment{},
		Warnings:     []string{},
	}
	if malformed {
		inv.warn(WarnMalformed)
	}

	body := root.infNFe()
	if body == nil {
		body = &xmlInfNFe{}
	}

	inv.AccessKey = accessKey(root.dedicatedKey(), body.ID)
	if inv.AccessKey == "" {
		inv.warn(WarnMissingAccessKey)
	}

	readHeader(inv, body.Ide)
	readIssuer(inv, body.Emit)
	readRecipient(inv, body.Dest)
	readLines(inv, body.Det)
	readTotals(inv, body.Total)
	readInstallments(inv, body.Cobr)
	if body.InfAdic != nil {
		inv.Notes = strings.TrimSpace(body.InfAdic.InfCpl)
	}
	return inv
}

// accessKey prefers the dedicated element and falls back to the 44 digits
// embedded in the infNFe Id attribute ("NFe" + key).
func accessKey(dedicated, id string) string {
	if k := strings.TrimSpace(dedicated); accessKeyPattern.MatchString(k) {
		return k
	}
	return embeddedKey.FindString(id)
}

func readHeader(inv *Invoice, ide *xmlIde) {
	if ide == nil {
		inv.warn(WarnMissingHeader)
		return
	}
	inv.Number = strings.TrimSpace(ide.NNF)
	inv.Series = strings.TrimSpace(ide.Serie)
	inv.OperationNature = strings.TrimSpace(ide.NatOp)
	issued := strings.TrimSpace(ide.DhEmi)
	if issued == "" {
		issued = strings.TrimSpace(ide.DEmi)
	}
	if issued != "" {
		inv.IssueDate = TruncateToDate(issued)
	}
}

func readIssuer(inv *Invoice, emit *xmlEmit) {
	if emit == nil {
		inv.warn(WarnMissingIssuer)
		return
	}
	taxID := DigitsOnly(emit.CNPJ)
	if taxID == "" {
		taxID = DigitsOnly(emit.CPF)
	}
	if taxID == "" {
		inv.warn(WarnMissingIssuerID)
		return
	}
	issuer := &Issuer{
		TaxID:             taxID,
		LegalName:         strings.TrimSpace(emit.XNome),
		TradeName:         strings.TrimSpace(emit.XFant),
		StateRegistration: strings.TrimSpace(emit.IE),
	}
	if emit.EnderEmit != nil {
		issuer.State = strings.TrimSpace(emit.EnderEmit.UF)
		issuer.Municipality = strings.TrimSpace(emit.EnderEmit.XMun)
	}
	inv.Issuer = issuer
}

func readRecipient(inv *Invoice, dest *xmlDest) {
	if dest == nil {
		return
	}
	rcpt := &Recipient{
		TaxID:         DigitsOnly(dest.CNPJ),
		PersonalTaxID: DigitsOnly(dest.CPF),
		LegalName:     strings.TrimSpace(dest.XNome),
	}
	if rcpt.TaxID == "" && rcpt.PersonalTaxID == "" {
		inv.warn(WarnRecipientNoID)
		return
	}
	if dest.EnderDest != nil {
		rcpt.State = strings.TrimSpace(dest.EnderDest.UF)
	}
	inv.Recipient = rcpt
}

func readLines(inv *Invoice, dets []xmlDet) {
	for _, det := range dets {
		if det.Prod == nil {
			continue
		}
		p := det.Prod
		inv.Lines = append(inv.Lines, Line{
			Sequence:     len(inv.Lines) + 1,
			SupplierCode: strings.TrimSpace(p.CProd),
			Description:  strings.TrimSpace(p.XProd),
			NCM:          strings.TrimSpace(p.NCM),
			CFOP:         strings.TrimSpace(p.CFOP),
			Unit:         strings.TrimSpace(p.UCom),
			Quantity:     ParseDecimal(p.QCom),
			UnitPrice:    ParseDecimal(p.VUnCom),
			LineTotal:    ParseDecimal(p.VProd),
			GTIN:         gtin(p.CEAN, p.CEANTrib),
		})
	}
	if len(inv.Lines) == 0 {
		inv.warn(WarnNoLines)
	}
}

// gtin returns the first usable barcode, treating "SEM GTIN" as absent.
func gtin(candidates ...string) string {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c != "" && !strings.EqualFold(c, gtinAbsent) {
			return c
		}
	}
	return ""
}

func readTotals(inv *Invoice, total *xmlTotal) {
	if total == nil || total.ICMSTot == nil {
		inv.warn(WarnMissingTotals)
		return
	}
	t := total.ICMSTot
	inv.Totals = &Totals{
		Products:     ParseDecimal(t.VProd),
		Discount:     ParseDecimal(t.VDesc),
		Freight:      ParseDecimal(t.VFrete),
		Insurance:    ParseDecimal(t.VSeg),
		OtherCharges: ParseDecimal(t.VOutro),
		ICMS:         ParseDecimal(t.VICMS),
		ICMSST:       ParseDecimal(t.VST),
		IPI:          ParseDecimal(t.VIPI),
		Invoice:      ParseDecimal(t.VNF),
	}
}

func readInstallments(inv *Invoice, cobr *xmlCobr) {
	if cobr == nil {
		return
	}
	for _, dup := range cobr.Dup {
		inst := Installment{
			Number: strings.TrimSpace(dup.NDup),
			Amount: ParseDecimal(dup.VDup),
		}
		if due := strings.TrimSpace(dup.DVenc); due != "" {
			inst.DueDate = TruncateToDate(due)
		}
		inv.Installments = append(inv.Installments, inst)
	}
}
