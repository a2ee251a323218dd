package nfe

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Typed view of the NF-e elements this package reads. Every group is a pointer
// so an absent element stays distinguishable from an empty one.

// xmlRoot is what a document yields: the first invoice body and the first
// dedicated access key, wherever each sits in the tree.
type xmlRoot struct {
	InfNFe *xmlInfNFe
	ChNFe  string
}

type xmlInfNFe struct {
	ID      string      `xml:"Id,attr"`
	Ide     *xmlIde     `xml:"ide"`
	Emit    *xmlEmit    `xml:"emit"`
	Dest    *xmlDest    `xml:"dest"`
	Det     []xmlDet    `xml:"det"`
	Total   *xmlTotal   `xml:"total"`
	Cobr    *xmlCobr    `xml:"cobr"`
	InfAdic *xmlInfAdic `xml:"infAdic"`
}

type xmlIde struct {
	NNF   string `xml:"nNF"`
	Serie string `xml:"serie"`
	DhEmi string `xml:"dhEmi"`
	DEmi  string `xml:"dEmi"`
	NatOp string `xml:"natOp"`
}

type xmlEmit struct {
	CNPJ      string      `xml:"CNPJ"`
	CPF       string      `xml:"CPF"`
	XNome     string      `xml:"xNome"`
	XFant     string      `xml:"xFant"`
	IE        string      `xml:"IE"`
	EnderEmit *xmlAddress `xml:"enderEmit"`
}

type xmlDest struct {
	CNPJ      string      `xml:"CNPJ"`
	CPF       string      `xml:"CPF"`
	XNome     string      `xml:"xNome"`
	EnderDest *xmlAddress `xml:"enderDest"`
}

type xmlAddress struct {
	UF   string `xml:"UF"`
	XMun string `xml:"xMun"`
}

type xmlDet struct {
	Prod *xmlProd `xml:"prod"`
}

type xmlProd struct {
	CProd    string `xml:"cProd"`
	CEAN     string `xml:"cEAN"`
	XProd    string `xml:"xProd"`
	NCM      string `xml:"NCM"`
	CFOP     string `xml:"CFOP"`
	UCom     string `xml:"uCom"`
	QCom     string `xml:"qCom"`
	VUnCom   string `xml:"vUnCom"`
	VProd    string `xml:"vProd"`
	CEANTrib string `xml:"cEANTrib"`
}

type xmlTotal struct {
	ICMSTot *xmlICMSTot `xml:"ICMSTot"`
}

type xmlICMSTot struct {
	VProd  string `xml:"vProd"`
	VDesc  string `xml:"vDesc"`
	VFrete string `xml:"vFrete"`
	VSeg   string `xml:"vSeg"`
	VOutro string `xml:"vOutro"`
	VICMS  string `xml:"vICMS"`
	VST    string `xml:"vST"`
	VIPI   string `xml:"vIPI"`
	VNF    string `xml:"vNF"`
}

type xmlCobr struct {
	Dup []xmlDup `xml:"dup"`
}

type xmlDup struct {
	NDup  string `xml:"nDup"`
	DVenc string `xml:"dVenc"`
	VDup  string `xml:"vDup"`
}

type xmlInfAdic struct {
	InfCpl string `xml:"infCpl"`
}

func (r *xmlRoot) infNFe() *xmlInfNFe {
	return r.InfNFe
}

func (r *xmlRoot) dedicatedKey() string {
	return r.ChNFe
}

var declaredEncoding = regexp.MustCompile(`(?i)<\?xml[^>]*encoding\s*=\s*["']([^"']+)["']`)

// legacyEncoding returns the decoder for the single-byte charsets NF-e emitters
// still declare, or nil for UTF-8 and unknown labels.
func legacyEncoding(label string) encoding.Encoding {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1
	case "windows-1252", "cp1252":
		return charmap.Windows1252
	}
	return nil
}

func charsetReader(label string, in io.Reader) (io.Reader, error) {
	enc := legacyEncoding(label)
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(in), nil
}

// canonicalTags maps lower-cased element and attribute names to the spelling
// the typed view declares, so the decoder matches tags case-insensitively.
var canonicalTags = collectTags(reflect.TypeOf(xmlInfNFe{}), map[string]string{
	"infnfe": "infNFe",
	"chnfe":  "chNFe",
})

func collectTags(t reflect.Type, into map[string]string) map[string]string {
	for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return into
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if name, _, _ := strings.Cut(f.Tag.Get("xml"), ","); name != "" {
			into[strings.ToLower(name)] = name
		}
		collectTags(f.Type, into)
	}
	return into
}

func canonicalName(n xml.Name) xml.Name {
	if c, ok := canonicalTags[strings.ToLower(n.Local)]; ok {
		n.Local = c
	}
	return n
}

// canonicalNames rewrites element and attribute names of known tags.
type canonicalNames struct {
	src xml.TokenReader
}

func (c canonicalNames) Token() (xml.Token, error) {
	tok, err := c.src.Token()
	switch t := tok.(type) {
	case xml.StartElement:
		t.Name = canonicalName(t.Name)
		attrs := make([]xml.Attr, len(t.Attr))
		for i, a := range t.Attr {
			a.Name = canonicalName(a.Name)
			attrs[i] = a
		}
		t.Attr = attrs
		tok = t
	case xml.EndElement:
		t.Name = canonicalName(t.Name)
		tok = t
	}
	return tok, err
}

// decodeSchema decodes a well-formed document into the typed view. The first
// infNFe and the first chNFe are taken from any depth, so envelopes and
// batch wrappers read the same as a bare nfeProc.
func decodeSchema(raw string) (*xmlRoot, error) {
	base := xml.NewDecoder(strings.NewReader(raw))
	base.CharsetReader = charsetReader
	dec := xml.NewTokenDecoder(canonicalNames{src: base})

	root := &xmlRoot{}
	depth, roots := 0, 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				if roots++; roots > 1 {
					return nil, errors.New("unexpected content after root element")
				}
			}
			switch {
			case t.Name.Local == "infNFe" && root.InfNFe == nil:
				var body xmlInfNFe
				if err := dec.DecodeElement(&body, &t); err != nil {
					return nil, err
				}
				root.InfNFe = &body
				continue
			case t.Name.Local == "chNFe" && root.ChNFe == "":
				if err := dec.DecodeElement(&root.ChNFe, &t); err != nil {
					return nil, err
				}
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	if roots == 0 {
		return nil, errors.New("no root element")
	}
	return root, nil
}

// utf8Markup converts a document declaring a legacy charset to UTF-8 text so
// the tolerant scanner sees the same characters the decoder would.
func utf8Markup(raw string) string {
	m := declaredEncoding.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	enc := legacyEncoding(m[1])
	if enc == nil {
		return raw
	}
	out, err := enc.NewDecoder().Bytes([]byte(raw))
	if err != nil {
		return raw
	}
	return string(out)
}

var idAttr = regexp.MustCompile(`(?is)<infNFe\s[^>]*?\bId\s*=\s*["']([^"']*)["']`)

// decodeMarkup fills the typed view with the tolerant extractor. It is used
// when the document is not well-formed and never fails.
func decodeMarkup(raw string) *xmlRoot {
	markup := utf8Markup(raw)
	root := &xmlRoot{}

	if key, ok := Scalar(markup, "chNFe"); ok {
		root.ChNFe = key
	}

	scope, ok := Block(markup, "infNFe")
	if !ok {
		scope = markup
	}
	inf := &xmlInfNFe{}
	root.InfNFe = inf
	if m := idAttr.FindStringSubmatch(markup); m != nil {
		inf.ID = m[1]
	}

	if ide, ok := Block(scope, "ide"); ok {
		inf.Ide = &xmlIde{
			NNF:   scalarOr(ide, "nNF"),
			Serie: scalarOr(ide, "serie"),
			DhEmi: scalarOr(ide, "dhEmi"),
			DEmi:  scalarOr(ide, "dEmi"),
			NatOp: scalarOr(ide, "natOp"),
		}
	}

	if emit, ok := Block(scope, "emit"); ok {
		inf.Emit = &xmlEmit{
			CNPJ:  scalarOr(emit, "CNPJ"),
			CPF:   scalarOr(emit, "CPF"),
			XNome: scalarOr(emit, "xNome"),
			XFant: scalarOr(emit, "xFant"),
			IE:    scalarOr(emit, "IE"),
		}
		if addr, ok := Block(emit, "enderEmit"); ok {
			inf.Emit.EnderEmit = &xmlAddress{UF: scalarOr(addr, "UF"), XMun: scalarOr(addr, "xMun")}
		}
	}

	if dest, ok := Block(scope, "dest"); ok {
		inf.Dest = &xmlDest{
			CNPJ:  scalarOr(dest, "CNPJ"),
			CPF:   scalarOr(dest, "CPF"),
			XNome: scalarOr(dest, "xNome"),
		}
		if addr, ok := Block(dest, "enderDest"); ok {
			inf.Dest.EnderDest = &xmlAddress{UF: scalarOr(addr, "UF"), XMun: scalarOr(addr, "xMun")}
		}
	}

	for _, det := range AllBlocks(scope, "det") {
		var d xmlDet
		if prod, ok := Block(det, "prod"); ok {
			d.Prod = &xmlProd{
				CProd:    scalarOr(prod, "cProd"),
				CEAN:     scalarOr(prod, "cEAN"),
				XProd:    scalarOr(prod, "xProd"),
				NCM:      scalarOr(prod, "NCM"),
				CFOP:     scalarOr(prod, "CFOP"),
				UCom:     scalarOr(prod, "uCom"),
				QCom:     scalarOr(prod, "qCom"),
				VUnCom:   scalarOr(prod, "vUnCom"),
				VProd:    scalarOr(prod, "vProd"),
				CEANTrib: scalarOr(prod, "cEANTrib"),
			}
		}
		inf.Det = append(inf.Det, d)
	}

	if total, ok := Block(scope, "total"); ok {
		inf.Total = &xmlTotal{}
		if tot, ok := Block(total, "ICMSTot"); ok {
			inf.Total.ICMSTot = &xmlICMSTot{
				VProd:  scalarOr(tot, "vProd"),
				VDesc:  scalarOr(tot, "vDesc"),
				VFrete: scalarOr(tot, "vFrete"),
				VSeg:   scalarOr(tot, "vSeg"),
				VOutro: scalarOr(tot, "vOutro"),
				VICMS:  scalarOr(tot, "vICMS"),
				VST:    scalarOr(tot, "vST"),
				VIPI:   scalarOr(tot, "vIPI"),
				VNF:    scalarOr(tot, "vNF"),
			}
		}
	}

	if cobr, ok := Block(scope, "cobr"); ok {
		inf.Cobr = &xmlCobr{}
		for _, dup := range AllBlocks(cobr, "dup") {
			inf.Cobr.Dup = append(inf.Cobr.Dup, xmlDup{
				NDup:  scalarOr(dup, "nDup"),
				DVenc: scalarOr(dup, "dVenc"),
				VDup:  scalarOr(dup, "vDup"),
			})
		}
	}

	if adic, ok := Block(scope, "infAdic"); ok {
		inf.InfAdic = &xmlInfAdic{InfCpl: scalarOr(adic, "infCpl")}
	}

	return root
}
