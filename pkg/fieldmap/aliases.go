package fieldmap

// aliasEntry binds one observed header spelling to a canonical key
type aliasEntry struct {
	alias    string
	key      string
	category Category
}

// aliasIndex is the exact-match lookup over aliasTable
var aliasIndex = make(map[string]aliasEntry, len(aliasTable))

func init() {
	for _, entry := range aliasTable {
		aliasIndex[entry.alias] = entry
	}
}

// aliasTable collects every header spelling observed across template
// revisions, in cleaned form (lowercase, whitespace collapsed). Declaration
// order matters for the containment fallback: more specific spellings must
// precede the generic ones they contain ("qty loading port" before
// "loading port"). When a column is renamed or retyped in a new template
// revision, its spelling is added here, never removed.
var aliasTable = []aliasEntry{
	// ---- contract identity ----
	{"contract number", KeyContractNumber, CategoryContract},
	{"contract no", KeyContractNumber, CategoryContract},
	{"contract no.", KeyContractNumber, CategoryContract},
	{"contract #", KeyContractNumber, CategoryContract},
	{"no contract", KeyContractNumber, CategoryContract},
	{"no. contract", KeyContractNumber, CategoryContract},
	{"no kontrak", KeyContractNumber, CategoryContract},
	{"nomor kontrak", KeyContractNumber, CategoryContract},
	{"contract no sap", KeyContractNumber, CategoryContract},
	{"sap contract no", KeyContractNumber, CategoryContract},
	{"sap contract number", KeyContractNumber, CategoryContract},
	{"contract", KeyContractNumber, CategoryContract},
	{"contract id", KeyContractNumber, CategoryContract},
	{"contrct no", KeyContractNumber, CategoryContract},
	{"po number", KeyPONumber, CategoryContract},
	{"po no", KeyPONumber, CategoryContract},
	{"po no.", KeyPONumber, CategoryContract},
	{"po #", KeyPONumber, CategoryContract},
	{"p.o. no", KeyPONumber, CategoryContract},
	{"p.o. number", KeyPONumber, CategoryContract},
	{"purchase order", KeyPONumber, CategoryContract},
	{"purchase order no", KeyPONumber, CategoryContract},
	{"purchase order number", KeyPONumber, CategoryContract},
	{"no po", KeyPONumber, CategoryContract},
	{"po sap", KeyPONumber, CategoryContract},
	{"sap po no", KeyPONumber, CategoryContract},
	{"sap po number", KeyPONumber, CategoryContract},

	// ---- contract attributes ----
	{"contract date", KeyContractDate, CategoryContract},
	{"date of contract", KeyContractDate, CategoryContract},
	{"tanggal kontrak", KeyContractDate, CategoryContract},
	{"tgl kontrak", KeyContractDate, CategoryContract},
	{"po date", KeyContractDate, CategoryContract},
	{"contract / po date", KeyContractDate, CategoryContract},
	{"supplier name", KeySupplierName, CategoryContract},
	{"supplier", KeySupplierName, CategoryContract},
	{"suplier", KeySupplierName, CategoryContract},
	{"nama supplier", KeySupplierName, CategoryContract},
	{"vendor name", KeySupplierName, CategoryContract},
	{"vendor", KeySupplierName, CategoryContract},
	{"seller", KeySupplierName, CategoryContract},
	{"seller name", KeySupplierName, CategoryContract},
	{"mill name", KeySupplierName, CategoryContract},
	{"product name", KeyProductName, CategoryContract},
	{"product", KeyProductName, CategoryContract},
	{"commodity", KeyProductName, CategoryContract},
	{"material", KeyProductName, CategoryContract},
	{"material description", KeyProductName, CategoryContract},
	{"item description", KeyProductName, CategoryContract},
	{"nama produk", KeyProductName, CategoryContract},
	{"product grade", KeyProductGrade, CategoryContract},
	{"grade", KeyProductGrade, CategoryContract},
	{"quality grade", KeyProductGrade, CategoryContract},
	{"spec", KeyProductGrade, CategoryContract},
	{"specification", KeyProductGrade, CategoryContract},
	{"contract quantity", KeyQuantityOrdered, CategoryContract},
	{"contract qty", KeyQuantityOrdered, CategoryContract},
	{"contract quantity (mt)", KeyQuantityOrdered, CategoryContract},
	{"contract qty (mt)", KeyQuantityOrdered, CategoryContract},
	{"quantity ordered", KeyQuantityOrdered, CategoryContract},
	{"qty ordered", KeyQuantityOrdered, CategoryContract},
	{"order quantity", KeyQuantityOrdered, CategoryContract},
	{"order qty", KeyQuantityOrdered, CategoryContract},
	{"po quantity", KeyQuantityOrdered, CategoryContract},
	{"po qty", KeyQuantityOrdered, CategoryContract},
	{"volume kontrak", KeyQuantityOrdered, CategoryContract},
	{"qty kontrak", KeyQuantityOrdered, CategoryContract},
	{"unit price", KeyUnitPrice, CategoryContract},
	{"price", KeyUnitPrice, CategoryContract},
	{"price/mt", KeyUnitPrice, CategoryContract},
	{"price per mt", KeyUnitPrice, CategoryContract},
	{"price (usd/mt)", KeyUnitPrice, CategoryContract},
	{"price usd/mt", KeyUnitPrice, CategoryContract},
	{"harga", KeyUnitPrice, CategoryContract},
	{"harga satuan", KeyUnitPrice, CategoryContract},
	{"unit price (usd)", KeyUnitPrice, CategoryContract},
	{"currency", KeyCurrency, CategoryContract},
	{"curr", KeyCurrency, CategoryContract},
	{"ccy", KeyCurrency, CategoryContract},
	{"mata uang", KeyCurrency, CategoryContract},
	{"delivery terms", KeyDeliveryTerms, CategoryContract},
	{"delivery term", KeyDeliveryTerms, CategoryContract},
	{"incoterm", KeyDeliveryTerms, CategoryContract},
	{"incoterms", KeyDeliveryTerms, CategoryContract},
	{"term of delivery", KeyDeliveryTerms, CategoryContract},
	{"terms of delivery", KeyDeliveryTerms, CategoryContract},
	{"franco", KeyDeliveryTerms, CategoryContract},
	{"destination", KeyDestination, CategoryContract},
	{"final destination", KeyDestination, CategoryContract},
	{"destination port", KeyDestination, CategoryContract},
	{"tujuan", KeyDestination, CategoryContract},
	{"sea/land", KeySeaLand, CategoryContract},
	{"sea / land", KeySeaLand, CategoryContract},
	{"sea-land", KeySeaLand, CategoryContract},
	{"sea land", KeySeaLand, CategoryContract},
	{"laut/darat", KeySeaLand, CategoryContract},
	{"mode", KeySeaLand, CategoryContract},
	{"transport mode", KeySeaLand, CategoryContract},
	{"mode of transport", KeySeaLand, CategoryContract},
	{"delivery mode", KeySeaLand, CategoryContract},
	{"via", KeySeaLand, CategoryContract},
	{"contract status", KeyContractStatus, CategoryContract},
	{"status kontrak", KeyContractStatus, CategoryContract},
	{"status", KeyContractStatus, CategoryContract},
	{"payment terms", KeyPaymentTerms, CategoryContract},
	{"payment term", KeyPaymentTerms, CategoryContract},
	{"term of payment", KeyPaymentTerms, CategoryContract},
	{"terms of payment", KeyPaymentTerms, CategoryContract},
	{"top", KeyPaymentTerms, CategoryContract},
	{"top (days)", KeyPaymentTerms, CategoryContract},

	// ---- shipment identity ----
	{"sto number", KeySTONumber, CategoryShipment},
	{"sto no", KeySTONumber, CategoryShipment},
	{"sto no.", KeySTONumber, CategoryShipment},
	{"sto #", KeySTONumber, CategoryShipment},
	{"sto", KeySTONumber, CategoryShipment},
	{"no sto", KeySTONumber, CategoryShipment},
	{"no. sto", KeySTONumber, CategoryShipment},
	{"sto sap", KeySTONumber, CategoryShipment},
	{"sap sto no", KeySTONumber, CategoryShipment},
	{"stock transport order", KeySTONumber, CategoryShipment},
	{"shipping transport order", KeySTONumber, CategoryShipment},
	{"shipment id", KeyShipmentID, CategoryShipment},
	{"shipment no", KeyShipmentID, CategoryShipment},
	{"shipment number", KeyShipmentID, CategoryShipment},
	{"shipment ref", KeyShipmentID, CategoryShipment},
	{"shipment reference", KeyShipmentID, CategoryShipment},

	// ---- shipment quantities (before generic port entries) ----
	{"sto quantity", KeySTOQuantity, CategoryShipment},
	{"sto qty", KeySTOQuantity, CategoryShipment},
	{"sto quantity (mt)", KeySTOQuantity, CategoryShipment},
	{"sto qty (mt)", KeySTOQuantity, CategoryShipment},
	{"qty sto", KeySTOQuantity, CategoryShipment},
	{"volume sto", KeySTOQuantity, CategoryShipment},
	{"qty loading port", KeyPortQuantity, CategoryShipment},
	{"quantity loading port", KeyPortQuantity, CategoryShipment},
	{"qty at loading port", KeyPortQuantity, CategoryShipment},
	{"quantity at loading port", KeyPortQuantity, CategoryShipment},
	{"qty loaded at port", KeyPortQuantity, CategoryShipment},
	{"qty discharge port", KeyPortQuantity, CategoryShipment},
	{"quantity discharge port", KeyPortQuantity, CategoryShipment},
	{"qty at discharge port", KeyPortQuantity, CategoryShipment},
	{"quantity loaded", KeyQuantityLoaded, CategoryShipment},
	{"qty loaded", KeyQuantityLoaded, CategoryShipment},
	{"total qty loaded", KeyQuantityLoaded, CategoryShipment},
	{"total quantity loaded", KeyQuantityLoaded, CategoryShipment},
	{"loaded quantity", KeyQuantityLoaded, CategoryShipment},
	{"bl quantity", KeyQuantityLoaded, CategoryShipment},
	{"bl qty", KeyQuantityLoaded, CategoryShipment},
	{"b/l quantity", KeyQuantityLoaded, CategoryShipment},
	{"b/l qty", KeyQuantityLoaded, CategoryShipment},
	{"quantity discharged", KeyQuantityDischarged, CategoryShipment},
	{"qty discharged", KeyQuantityDischarged, CategoryShipment},
	{"discharged quantity", KeyQuantityDischarged, CategoryShipment},
	{"outturn quantity", KeyQuantityDischarged, CategoryShipment},
	{"outturn qty", KeyQuantityDischarged, CategoryShipment},
	{"qty received", KeyQuantityDischarged, CategoryShipment},
	{"quantity received", KeyQuantityDischarged, CategoryShipment},

	// ---- shipment logistics ----
	{"shipping line", KeyShippingLine, CategoryShipment},
	{"shipping company", KeyShippingLine, CategoryShipment},
	{"carrier", KeyShippingLine, CategoryShipment},
	{"owner/operator", KeyShippingLine, CategoryShipment},
	{"vessel owner", KeyShippingLine, CategoryShipment},
	{"readiness date", KeyReadinessDate, CategoryShipment},
	{"cargo readiness", KeyReadinessDate, CategoryShipment},
	{"cargo readiness date", KeyReadinessDate, CategoryShipment},
	{"readiness", KeyReadinessDate, CategoryShipment},
	{"laycan", KeyReadinessDate, CategoryShipment},
	{"laycan date", KeyReadinessDate, CategoryShipment},
	{"sail date", KeySailDate, CategoryShipment},
	{"sailing date", KeySailDate, CategoryShipment},
	{"atd", KeySailDate, CategoryShipment},
	{"etd", KeySailDate, CategoryShipment},
	{"departure vessel", KeySailDate, CategoryShipment},
	{"vessel departure", KeySailDate, CategoryShipment},
	{"bl number", KeyBLNumber, CategoryShipment},
	{"bl no", KeyBLNumber, CategoryShipment},
	{"bl no.", KeyBLNumber, CategoryShipment},
	{"b/l number", KeyBLNumber, CategoryShipment},
	{"b/l no", KeyBLNumber, CategoryShipment},
	{"bill of lading", KeyBLNumber, CategoryShipment},
	{"bill of lading no", KeyBLNumber, CategoryShipment},
	{"no bl", KeyBLNumber, CategoryShipment},
	{"bl date", KeyBLDate, CategoryShipment},
	{"b/l date", KeyBLDate, CategoryShipment},
	{"bill of lading date", KeyBLDate, CategoryShipment},
	{"tanggal bl", KeyBLDate, CategoryShipment},

	// ---- port milestones (before bare port-name entries) ----
	{"eta arrival", KeyETAArrival, CategoryShipment},
	{"eta vessel arrival", KeyETAArrival, CategoryShipment},
	{"est arrival", KeyETAArrival, CategoryShipment},
	{"estimated arrival", KeyETAArrival, CategoryShipment},
	{"ata arrival", KeyATAArrival, CategoryShipment},
	{"actual arrival", KeyATAArrival, CategoryShipment},
	{"act arrival", KeyATAArrival, CategoryShipment},
	{"arrival date", KeyATAArrival, CategoryShipment},
	{"eta berthing", KeyETABerthing, CategoryShipment},
	{"est berthing", KeyETABerthing, CategoryShipment},
	{"estimated berthing", KeyETABerthing, CategoryShipment},
	{"ata berthing", KeyATABerthing, CategoryShipment},
	{"actual berthing", KeyATABerthing, CategoryShipment},
	{"berthing date", KeyATABerthing, CategoryShipment},
	{"berthing", KeyATABerthing, CategoryShipment},
	{"eta commenced", KeyETACommenced, CategoryShipment},
	{"eta commence loading", KeyETACommenced, CategoryShipment},
	{"est commenced loading", KeyETACommenced, CategoryShipment},
	{"ata commenced", KeyATACommenced, CategoryShipment},
	{"commenced loading", KeyATACommenced, CategoryShipment},
	{"loading commenced", KeyATACommenced, CategoryShipment},
	{"commence loading", KeyATACommenced, CategoryShipment},
	{"start loading", KeyATACommenced, CategoryShipment},
	{"eta completed", KeyETACompleted, CategoryShipment},
	{"eta complete loading", KeyETACompleted, CategoryShipment},
	{"est completed loading", KeyETACompleted, CategoryShipment},
	{"ata completed", KeyATACompleted, CategoryShipment},
	{"completed loading", KeyATACompleted, CategoryShipment},
	{"loading completed", KeyATACompleted, CategoryShipment},
	{"complete loading", KeyATACompleted, CategoryShipment},
	{"finish loading", KeyATACompleted, CategoryShipment},
	{"loading rate", KeyLoadingRate, CategoryShipment},
	{"load rate", KeyLoadingRate, CategoryShipment},
	{"loading rate (mt/hr)", KeyLoadingRate, CategoryShipment},
	{"rate (mt/hour)", KeyLoadingRate, CategoryShipment},
	// bare eta/ata last so the specific milestone spellings above win
	{"eta", KeyETAArrival, CategoryShipment},
	{"ata", KeyATAArrival, CategoryShipment},

	// ---- quality (before bare port names: quality headers carry port
	// location suffixes like "ffa loading port 1") ----
	{"ffa", KeyFFA, CategoryQuality},
	{"ffa %", KeyFFA, CategoryQuality},
	{"ffa (%)", KeyFFA, CategoryQuality},
	{"free fatty acid", KeyFFA, CategoryQuality},
	{"f.f.a", KeyFFA, CategoryQuality},
	{"moisture", KeyMoisture, CategoryQuality},
	{"moisture %", KeyMoisture, CategoryQuality},
	{"moisture (%)", KeyMoisture, CategoryQuality},
	{"moist", KeyMoisture, CategoryQuality},
	{"m&i", KeyMoisture, CategoryQuality},
	{"moisture & impurities", KeyMoisture, CategoryQuality},
	{"kadar air", KeyMoisture, CategoryQuality},
	{"dobi", KeyDOBI, CategoryQuality},
	{"dobi value", KeyDOBI, CategoryQuality},
	{"d.o.b.i", KeyDOBI, CategoryQuality},
	{"deterioration of bleachability index", KeyDOBI, CategoryQuality},
	{"color", KeyColor, CategoryQuality},
	{"colour", KeyColor, CategoryQuality},
	{"color (red)", KeyColor, CategoryQuality},
	{"colour (red)", KeyColor, CategoryQuality},
	{"lovibond", KeyColor, CategoryQuality},
	{"dirt & sand", KeyDirtSand, CategoryQuality},
	{"dirt and sand", KeyDirtSand, CategoryQuality},
	{"dirt/sand", KeyDirtSand, CategoryQuality},
	{"dirt", KeyDirtSand, CategoryQuality},
	{"impurities", KeyDirtSand, CategoryQuality},
	{"stone", KeyStone, CategoryQuality},
	{"stones", KeyStone, CategoryQuality},
	{"stone %", KeyStone, CategoryQuality},
	{"shell & stone", KeyStone, CategoryQuality},

	// ---- port names ----
	{"loading port", KeyPortName, CategoryShipment},
	{"load port", KeyPortName, CategoryShipment},
	{"port of loading", KeyPortName, CategoryShipment},
	{"pol", KeyPortName, CategoryShipment},
	{"pelabuhan muat", KeyPortName, CategoryShipment},
	{"discharge port", KeyPortName, CategoryShipment},
	{"discharging port", KeyPortName, CategoryShipment},
	{"port of discharge", KeyPortName, CategoryShipment},
	{"pod", KeyPortName, CategoryShipment},
	{"pelabuhan bongkar", KeyPortName, CategoryShipment},

	// ---- trucking ----
	{"trucking id", KeyTruckingOperationID, CategoryTrucking},
	{"trucking no", KeyTruckingOperationID, CategoryTrucking},
	{"trucking operation id", KeyTruckingOperationID, CategoryTrucking},
	{"trip id", KeyTruckingOperationID, CategoryTrucking},
	{"trip no", KeyTruckingOperationID, CategoryTrucking},
	{"do number", KeyTruckingOperationID, CategoryTrucking},
	{"do no", KeyTruckingOperationID, CategoryTrucking},
	{"delivery order no", KeyTruckingOperationID, CategoryTrucking},
	{"trucking company", KeyTruckingCompany, CategoryTrucking},
	{"trucking vendor", KeyTruckingCompany, CategoryTrucking},
	{"transporter", KeyTruckingCompany, CategoryTrucking},
	{"transporter name", KeyTruckingCompany, CategoryTrucking},
	{"hauler", KeyTruckingCompany, CategoryTrucking},
	{"fleet company", KeyTruckingCompany, CategoryTrucking},
	{"vehicle number", KeyVehicleNumber, CategoryTrucking},
	{"vehicle no", KeyVehicleNumber, CategoryTrucking},
	{"truck number", KeyVehicleNumber, CategoryTrucking},
	{"truck no", KeyVehicleNumber, CategoryTrucking},
	{"plate number", KeyVehicleNumber, CategoryTrucking},
	{"plate no", KeyVehicleNumber, CategoryTrucking},
	{"nopol", KeyVehicleNumber, CategoryTrucking},
	{"no polisi", KeyVehicleNumber, CategoryTrucking},
	{"qty sent via trucking", KeyQuantitySent, CategoryTrucking},
	{"quantity sent via trucking", KeyQuantitySent, CategoryTrucking},
	{"qty sent", KeyQuantitySent, CategoryTrucking},
	{"quantity sent", KeyQuantitySent, CategoryTrucking},
	{"qty dispatched", KeyQuantitySent, CategoryTrucking},
	{"qty delivered via trucking", KeyQuantityDelivered, CategoryTrucking},
	{"quantity delivered via trucking", KeyQuantityDelivered, CategoryTrucking},
	{"qty delivered", KeyQuantityDelivered, CategoryTrucking},
	{"quantity delivered", KeyQuantityDelivered, CategoryTrucking},
	{"delivered qty", KeyQuantityDelivered, CategoryTrucking},
	{"loading location", KeyLoadingLocation, CategoryTrucking},
	{"loading point", KeyLoadingLocation, CategoryTrucking},
	{"origin", KeyLoadingLocation, CategoryTrucking},
	{"origin location", KeyLoadingLocation, CategoryTrucking},
	{"pickup location", KeyLoadingLocation, CategoryTrucking},
	{"lokasi muat", KeyLoadingLocation, CategoryTrucking},
	{"discharge location", KeyDischargeLocation, CategoryTrucking},
	{"unloading location", KeyDischargeLocation, CategoryTrucking},
	{"unloading point", KeyDischargeLocation, CategoryTrucking},
	{"delivery location", KeyDischargeLocation, CategoryTrucking},
	{"drop location", KeyDischargeLocation, CategoryTrucking},
	{"lokasi bongkar", KeyDischargeLocation, CategoryTrucking},
	{"departure date", KeyDepartureDate, CategoryTrucking},
	{"dispatch date", KeyDepartureDate, CategoryTrucking},
	{"tanggal berangkat", KeyDepartureDate, CategoryTrucking},
	{"truck arrival date", KeyArrivalDate, CategoryTrucking},
	{"delivery date", KeyArrivalDate, CategoryTrucking},
	{"received date", KeyArrivalDate, CategoryTrucking},
	{"tanggal tiba", KeyArrivalDate, CategoryTrucking},

	// ---- payment ----
	{"payment due date", KeyPaymentDueDate, CategoryPayment},
	{"due date", KeyPaymentDueDate, CategoryPayment},
	{"due date payment", KeyPaymentDueDate, CategoryPayment},
	{"payment due", KeyPaymentDueDate, CategoryPayment},
	{"jatuh tempo", KeyPaymentDueDate, CategoryPayment},
	{"dp date", KeyDPDate, CategoryPayment},
	{"down payment date", KeyDPDate, CategoryPayment},
	{"dp paid date", KeyDPDate, CategoryPayment},
	{"tanggal dp", KeyDPDate, CategoryPayment},
	{"payoff date", KeyPayoffDate, CategoryPayment},
	{"pay off date", KeyPayoffDate, CategoryPayment},
	{"payoff", KeyPayoffDate, CategoryPayment},
	{"full payment date", KeyPayoffDate, CategoryPayment},
	{"settlement date", KeyPayoffDate, CategoryPayment},
	{"tanggal pelunasan", KeyPayoffDate, CategoryPayment},
	{"payment deviation", KeyPaymentDeviation, CategoryPayment},
	{"deviation", KeyPaymentDeviation, CategoryPayment},
	{"deviation (days)", KeyPaymentDeviation, CategoryPayment},
	{"payment deviation (days)", KeyPaymentDeviation, CategoryPayment},

	// ---- vessel ----
	{"vessel name", KeyVesselName, CategoryVessel},
	{"vessel", KeyVesselName, CategoryVessel},
	{"mv name", KeyVesselName, CategoryVessel},
	{"mother vessel", KeyVesselName, CategoryVessel},
	{"nama kapal", KeyVesselName, CategoryVessel},
	{"name of vessel", KeyVesselName, CategoryVessel},
	{"imo number", KeyIMONumber, CategoryVessel},
	{"imo no", KeyIMONumber, CategoryVessel},
	{"imo", KeyIMONumber, CategoryVessel},
	{"vessel flag", KeyVesselFlag, CategoryVessel},
	{"flag", KeyVesselFlag, CategoryVessel},
	{"flag state", KeyVesselFlag, CategoryVessel},
	{"vessel capacity", KeyVesselCapacity, CategoryVessel},
	{"capacity (mt)", KeyVesselCapacity, CategoryVessel},
	{"dwt", KeyVesselCapacity, CategoryVessel},
	{"deadweight", KeyVesselCapacity, CategoryVessel},
}
