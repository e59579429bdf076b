// internal/models/enums.go
package models

// Country is the closed set of countries the marketplace operates in.
type Country string

const (
	CountrySlovakia Country = "SLOVAKIA"
	CountryCzechia  Country = "CZECHIA"
	CountryAustria  Country = "AUSTRIA"
	CountryPoland   Country = "POLAND"
	CountryHungary  Country = "HUNGARY"
)

var countries = map[Country]struct{}{
	CountrySlovakia: {},
	CountryCzechia:  {},
	CountryAustria:  {},
	CountryPoland:   {},
	CountryHungary:  {},
}

// ParseCountry returns the Country for s, or false when s is not in the
// closed set. Callers treat an unknown value as "no constraint".
func ParseCountry(s string) (Country, bool) {
	c := Country(s)
	_, ok := countries[c]
	return c, ok
}

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyPLN Currency = "PLN"
	CurrencyGBP Currency = "GBP"
	CurrencyCZK Currency = "CZK"
	CurrencyHUF Currency = "HUF"
)

var currencies = map[Currency]struct{}{
	CurrencyUSD: {}, CurrencyEUR: {}, CurrencyPLN: {},
	CurrencyGBP: {}, CurrencyCZK: {}, CurrencyHUF: {},
}

func ParseCurrency(s string) (Currency, bool) {
	c := Currency(s)
	_, ok := currencies[c]
	return c, ok
}

type CarType string

const (
	CarTypeClassic    CarType = "CLASSIC"
	CarTypeSports     CarType = "SPORTS"
	CarTypeElectrical CarType = "ELECTRICAL"
	CarTypeSUV        CarType = "SUV"
	CarTypeTruck      CarType = "TRUCK"
	CarTypeHybrid     CarType = "HYBRID"
	CarTypeBus        CarType = "BUS"
)

type CarBrand string

const (
	CarBrandToyota     CarBrand = "TOYOTA"
	CarBrandVolkswagen CarBrand = "VOLKSWAGEN"
	CarBrandSkoda      CarBrand = "SKODA"
	CarBrandBMW        CarBrand = "BMW"
	CarBrandMercedes   CarBrand = "MERCEDES_BENZ"
	CarBrandAudi       CarBrand = "AUDI"
	CarBrandFord       CarBrand = "FORD"
	CarBrandHyundai    CarBrand = "HYUNDAI"
	CarBrandKia        CarBrand = "KIA"
	CarBrandPeugeot    CarBrand = "PEUGEOT"
	CarBrandRenault    CarBrand = "RENAULT"
	CarBrandTesla      CarBrand = "TESLA"
	CarBrandVolvo      CarBrand = "VOLVO"
	CarBrandOpel       CarBrand = "OPEL"
	CarBrandFiat       CarBrand = "FIAT"
)

// OfferType is the closed vocabulary of car-service offer categories.
type OfferType string

const (
	OfferTypeMaintenance              OfferType = "MAINTENANCE"
	OfferTypeRepair                   OfferType = "REPAIR"
	OfferTypeDiagnostics              OfferType = "DIAGNOSTICS"
	OfferTypeEngineRepair             OfferType = "ENGINE_REPAIR"
	OfferTypeTransmissionRepair       OfferType = "TRANSMISSION_REPAIR"
	OfferTypeClutchRepair             OfferType = "CLUTCH_REPAIR"
	OfferTypeTimingBeltReplacement    OfferType = "TIMING_BELT_REPLACEMENT"
	OfferTypeBrakeService             OfferType = "BRAKE_SERVICE"
	OfferTypeSuspensionRepair         OfferType = "SUSPENSION_REPAIR"
	OfferTypeSteeringRepair           OfferType = "STEERING_REPAIR"
	OfferTypeElectrical               OfferType = "ELECTRICAL"
	OfferTypeBatteryService           OfferType = "BATTERY_SERVICE"
	OfferTypeAlternatorRepair         OfferType = "ALTERNATOR_REPAIR"
	OfferTypeStarterRepair            OfferType = "STARTER_REPAIR"
	OfferTypeLightingRepair           OfferType = "LIGHTING_REPAIR"
	OfferTypeECUProgramming           OfferType = "ECU_PROGRAMMING"
	OfferTypeOilChange                OfferType = "OIL_CHANGE"
	OfferTypeFilterReplacement        OfferType = "FILTER_REPLACEMENT"
	OfferTypeCoolantService           OfferType = "COOLANT_SERVICE"
	OfferTypeBrakeFluidService        OfferType = "BRAKE_FLUID_SERVICE"
	OfferTypeTransmissionFluidService OfferType = "TRANSMISSION_FLUID_SERVICE"
	OfferTypeTireChange               OfferType = "TIRE_CHANGE"
	OfferTypeTireBalancing            OfferType = "TIRE_BALANCING"
	OfferTypeWheelAlignment           OfferType = "WHEEL_ALIGNMENT"
	OfferTypePunctureRepair           OfferType = "PUNCTURE_REPAIR"
	OfferTypeExhaustRepair            OfferType = "EXHAUST_REPAIR"
	OfferTypeEmissionsService         OfferType = "EMISSIONS_SERVICE"
	OfferTypeCatalyticConverterRepair OfferType = "CATALYTIC_CONVERTER_REPAIR"
	OfferTypeACService                OfferType = "AC_SERVICE"
	OfferTypeACRepair                 OfferType = "AC_REPAIR"
	OfferTypeHeatingRepair            OfferType = "HEATING_REPAIR"
	OfferTypeBodyWork                 OfferType = "BODY_WORK"
	OfferTypePainting                 OfferType = "PAINTING"
	OfferTypeDentRemoval              OfferType = "DENT_REMOVAL"
	OfferTypeInteriorRepair           OfferType = "INTERIOR_REPAIR"
	OfferTypeUpholsteryRepair         OfferType = "UPHOLSTERY_REPAIR"
	OfferTypeWindowMechanismRepair    OfferType = "WINDOW_MECHANISM_REPAIR"
	OfferTypePrePurchaseInspection    OfferType = "PRE_PURCHASE_INSPECTION"
	OfferTypeSafetyInspection         OfferType = "SAFETY_INSPECTION"
	OfferTypeCarWash                  OfferType = "CAR_WASH"
	OfferTypeDetailing                OfferType = "DETAILING"
	OfferTypeTowing                   OfferType = "TOWING"
)

var offerTypes = func() map[OfferType]struct{} {
	all := []OfferType{
		OfferTypeMaintenance, OfferTypeRepair, OfferTypeDiagnostics,
		OfferTypeEngineRepair, OfferTypeTransmissionRepair, OfferTypeClutchRepair,
		OfferTypeTimingBeltReplacement, OfferTypeBrakeService, OfferTypeSuspensionRepair,
		OfferTypeSteeringRepair, OfferTypeElectrical, OfferTypeBatteryService,
		OfferTypeAlternatorRepair, OfferTypeStarterRepair, OfferTypeLightingRepair,
		OfferTypeECUProgramming, OfferTypeOilChange, OfferTypeFilterReplacement,
		OfferTypeCoolantService, OfferTypeBrakeFluidService, OfferTypeTransmissionFluidService,
		OfferTypeTireChange, OfferTypeTireBalancing, OfferTypeWheelAlignment,
		OfferTypePunctureRepair, OfferTypeExhaustRepair, OfferTypeEmissionsService,
		OfferTypeCatalyticConverterRepair, OfferTypeACService, OfferTypeACRepair,
		OfferTypeHeatingRepair, OfferTypeBodyWork, OfferTypePainting,
		OfferTypeDentRemoval, OfferTypeInteriorRepair, OfferTypeUpholsteryRepair,
		OfferTypeWindowMechanismRepair, OfferTypePrePurchaseInspection,
		OfferTypeSafetyInspection, OfferTypeCarWash, OfferTypeDetailing, OfferTypeTowing,
	}
	m := make(map[OfferType]struct{}, len(all))
	for _, t := range all {
		m[t] = struct{}{}
	}
	return m
}()

func ParseOfferType(s string) (OfferType, bool) {
	t := OfferType(s)
	_, ok := offerTypes[t]
	return t, ok
}

// QueryFunc classifies what the user wants from a question.
type QueryFunc string

const (
	QueryFuncInfo          QueryFunc = "INFO"
	QueryFuncCheapest      QueryFunc = "CHEAPEST"
	QueryFuncMostExpensive QueryFunc = "MOST_EXPENSIVE"
	QueryFuncCompare       QueryFunc = "COMPARE"
	QueryFuncMaxDistance   QueryFunc = "MAX_DISTANCE"
	QueryFuncAvailability  QueryFunc = "AVAILABILITY"
)

var queryFuncs = map[QueryFunc]struct{}{
	QueryFuncInfo: {}, QueryFuncCheapest: {}, QueryFuncMostExpensive: {},
	QueryFuncCompare: {}, QueryFuncMaxDistance: {}, QueryFuncAvailability: {},
}

func ParseQueryFunc(s string) (QueryFunc, bool) {
	f := QueryFunc(s)
	_, ok := queryFuncs[f]
	return f, ok
}

// Source records where an indexed document's content originated.
type Source string

const (
	SourceFile       Source = "FILE"
	SourceURL        Source = "URL"
	SourcePostgreSQL Source = "POSTGRESQL"
	SourceAPI        Source = "API"
)
