package fieldmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanHeader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercases and trims", input: "  Contract No.  ", expected: "contract no."},
		{name: "collapses line breaks", input: "Contract\nQuantity\n(MT)", expected: "contract quantity (mt)"},
		{name: "collapses crlf", input: "Vessel\r\nName", expected: "vessel name"},
		{name: "collapses whitespace runs", input: "ETA   Arrival    Loading  Port 1", expected: "eta arrival loading port 1"},
		{name: "strips trailing colon", input: "Supplier Name:", expected: "supplier name"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanHeader(tt.input))
		})
	}
}

// TestResolveHistoricalSpellings pins the resolution of header spellings seen
// across template revisions. New spellings get added here when the alias
// table grows.
func TestResolveHistoricalSpellings(t *testing.T) {
	tests := []struct {
		header   string
		key      string
		category Category
	}{
		// contract
		{"Contract No.", KeyContractNumber, CategoryContract},
		{"CONTRACT NUMBER", KeyContractNumber, CategoryContract},
		{"No Kontrak", KeyContractNumber, CategoryContract},
		{"Contrct No", KeyContractNumber, CategoryContract},
		{"PO No.", KeyPONumber, CategoryContract},
		{"Purchase Order Number", KeyPONumber, CategoryContract},
		{"Contract Date", KeyContractDate, CategoryContract},
		{"Tgl Kontrak", KeyContractDate, CategoryContract},
		{"Supplier Name", KeySupplierName, CategoryContract},
		{"Vendor", KeySupplierName, CategoryContract},
		{"Material Description", KeyProductName, CategoryContract},
		{"Commodity", KeyProductName, CategoryContract},
		{"Quality Grade", KeyProductGrade, CategoryContract},
		{"Contract Quantity (MT)", KeyQuantityOrdered, CategoryContract},
		{"Contract\nQty\n(MT)", KeyQuantityOrdered, CategoryContract},
		{"Volume Kontrak", KeyQuantityOrdered, CategoryContract},
		{"Price (USD/MT)", KeyUnitPrice, CategoryContract},
		{"Harga Satuan", KeyUnitPrice, CategoryContract},
		{"CCY", KeyCurrency, CategoryContract},
		{"Incoterms", KeyDeliveryTerms, CategoryContract},
		{"Final Destination", KeyDestination, CategoryContract},
		{"Sea/Land", KeySeaLand, CategoryContract},
		{"Mode of Transport", KeySeaLand, CategoryContract},
		{"Terms of Payment", KeyPaymentTerms, CategoryContract},

		// shipment
		{"STO No.", KeySTONumber, CategoryShipment},
		{"Stock Transport Order", KeySTONumber, CategoryShipment},
		{"STO Qty (MT)", KeySTOQuantity, CategoryShipment},
		{"Shipment Reference", KeyShipmentID, CategoryShipment},
		{"Shipping Line", KeyShippingLine, CategoryShipment},
		{"Cargo Readiness Date", KeyReadinessDate, CategoryShipment},
		{"Sailing Date", KeySailDate, CategoryShipment},
		{"Bill of Lading No", KeyBLNumber, CategoryShipment},
		{"B/L Date", KeyBLDate, CategoryShipment},
		{"Total Qty Loaded", KeyQuantityLoaded, CategoryShipment},
		{"Outturn Quantity", KeyQuantityDischarged, CategoryShipment},

		// port legs: the alias matches the concept, the leg number rides
		// along in the header for the row parser to pick up
		{"Loading Port 1", KeyPortName, CategoryShipment},
		{"Loading Port 2", KeyPortName, CategoryShipment},
		{"Port of Loading 3", KeyPortName, CategoryShipment},
		{"Discharge Port", KeyPortName, CategoryShipment},
		{"Qty Loading Port 1", KeyPortQuantity, CategoryShipment},
		{"Quantity at Loading Port 2", KeyPortQuantity, CategoryShipment},
		{"ETA Arrival Loading Port 1", KeyETAArrival, CategoryShipment},
		{"Actual Arrival Loading Port 2", KeyATAArrival, CategoryShipment},
		{"ATA Berthing Discharge Port", KeyATABerthing, CategoryShipment},
		{"Commenced Loading Port 1", KeyATACommenced, CategoryShipment},
		{"Loading Completed Port 1", KeyATACompleted, CategoryShipment},
		{"Loading Rate (MT/HR)", KeyLoadingRate, CategoryShipment},

		// quality
		{"FFA (%)", KeyFFA, CategoryQuality},
		{"Free Fatty Acid Loading Port 1", KeyFFA, CategoryQuality},
		{"Moisture & Impurities", KeyMoisture, CategoryQuality},
		{"Kadar Air", KeyMoisture, CategoryQuality},
		{"DOBI Value", KeyDOBI, CategoryQuality},
		{"Colour (Red)", KeyColor, CategoryQuality},
		{"Dirt & Sand", KeyDirtSand, CategoryQuality},
		{"Shell & Stone", KeyStone, CategoryQuality},

		// trucking
		{"Delivery Order No", KeyTruckingOperationID, CategoryTrucking},
		{"Transporter Name", KeyTruckingCompany, CategoryTrucking},
		{"No Polisi", KeyVehicleNumber, CategoryTrucking},
		{"Plate Number", KeyVehicleNumber, CategoryTrucking},
		{"Qty Sent via Trucking", KeyQuantitySent, CategoryTrucking},
		{"Quantity Delivered via Trucking", KeyQuantityDelivered, CategoryTrucking},
		{"Lokasi Muat", KeyLoadingLocation, CategoryTrucking},
		{"Unloading Location", KeyDischargeLocation, CategoryTrucking},
		{"Dispatch Date", KeyDepartureDate, CategoryTrucking},

		// payment
		{"Payment Due Date", KeyPaymentDueDate, CategoryPayment},
		{"Jatuh Tempo", KeyPaymentDueDate, CategoryPayment},
		{"Down Payment Date", KeyDPDate, CategoryPayment},
		{"Pay Off Date", KeyPayoffDate, CategoryPayment},
		{"Settlement Date", KeyPayoffDate, CategoryPayment},
		{"Payment Deviation (Days)", KeyPaymentDeviation, CategoryPayment},

		// vessel
		{"Vessel Name", KeyVesselName, CategoryVessel},
		{"Nama Kapal", KeyVesselName, CategoryVessel},
		{"IMO No", KeyIMONumber, CategoryVessel},
		{"Flag State", KeyVesselFlag, CategoryVessel},
		{"Deadweight", KeyVesselCapacity, CategoryVessel},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			mapping := Resolve(0, tt.header)
			assert.Equal(t, tt.key, mapping.Key, "key for %q", tt.header)
			assert.Equal(t, tt.category, mapping.Category, "category for %q", tt.header)
		})
	}
}

func TestResolvePrioritySubstrings(t *testing.T) {
	// "sto quantity" must win over the "contract quantity" concept when both
	// words appear, and sto headers are forced to shipment.
	mapping := Resolve(0, "STO Quantity per Contract (MT)")
	assert.Equal(t, KeySTOQuantity, mapping.Key)
	assert.Equal(t, CategoryShipment, mapping.Category)

	mapping = Resolve(0, "Contract No. & Date")
	assert.Equal(t, KeyContractNumber, mapping.Key)
}

func TestResolveSnakeFallback(t *testing.T) {
	mapping := Resolve(3, "Remarks From Ops Team")
	assert.Equal(t, "remarks_from_ops_team", mapping.Key)
	assert.True(t, mapping.FromSource)
	assert.Equal(t, 3, mapping.Index)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		header   string
		expected Category
	}{
		{"sto reference", CategoryShipment}, // sto forced to shipment first
		{"supplier rating", CategoryContract},
		{"vessel nomination remarks", CategoryShipment}, // shipment predicate wins over vessel
		{"surveyor remarks", CategoryQuality},
		{"driver contact", CategoryTrucking},
		{"invoice remarks", CategoryPayment},
		{"imo class notes", CategoryVessel},
		{"po remarks", CategoryContract},
		{"tempo sail date", CategoryShipment},   // "po" must not fire inside "tempo"
		{"depo truck rental", CategoryTrucking}, // nor inside "depo"
		{"general remarks", CategoryContract},   // nothing matches, broadest family
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.expected, Categorize(tt.header))
		})
	}
}

func TestMapHeadersSkipsBlanks(t *testing.T) {
	mappings := MapHeaders([]string{"Contract No.", "", "   ", "Vessel Name"})

	require.Len(t, mappings, 2)
	assert.Equal(t, 0, mappings[0].Index)
	assert.Equal(t, KeyContractNumber, mappings[0].Key)
	assert.Equal(t, 3, mappings[1].Index)
	assert.Equal(t, KeyVesselName, mappings[1].Key)
}

func TestMapFixedLayout(t *testing.T) {
	rows := [][]string{
		{"SAP", "SAP", "Manual", "Calc"},
		{"Contract No.", "STO No.", "Vessel Name", "Contract Value"},
		{"C100", "S1", "MV Alpha", "50000"},
	}

	mappings := MapFixedLayout(rows, 1)
	require.Len(t, mappings, 4)

	assert.True(t, mappings[0].FromSource)
	assert.False(t, mappings[0].ManualEntry)

	assert.True(t, mappings[2].ManualEntry)
	assert.False(t, mappings[2].FromSource)

	assert.True(t, mappings[3].Calculated)
	assert.False(t, mappings[3].FromSource)
}

func TestMapFixedLayoutWithoutLegend(t *testing.T) {
	rows := [][]string{
		{"Contract No.", "STO No."},
		{"C100", "S1"},
	}

	mappings := MapFixedLayout(rows, 0)
	require.Len(t, mappings, 2)
	for _, m := range mappings {
		assert.True(t, m.FromSource)
		assert.False(t, m.ManualEntry)
		assert.False(t, m.Calculated)
	}
}

func TestMapFixedLayoutOutOfRange(t *testing.T) {
	assert.Nil(t, MapFixedLayout([][]string{{"Contract No."}}, 5))
	assert.Nil(t, MapFixedLayout(nil, 0))
}
