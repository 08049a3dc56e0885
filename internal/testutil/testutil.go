// Package testutil provides shared test helpers and LAS fixtures.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// MinimalLAS is the smallest useful LAS 2.0 file: a depth and a gamma ray
// curve with one null sample.
const MinimalLAS = `~VERSION INFORMATION
 VERS.                  2.00 : CWLS LOG ASCII STANDARD - VERSION 2.00
 WRAP.                    NO : ONE LINE PER DEPTH STEP
 DLM .                 SPACE : DELIMITING CHARACTER
~WELL INFORMATION
#MNEM.UNIT      DATA            : DESCRIPTION
 STRT.F          100            : START DEPTH
 STOP.F          102            : STOP DEPTH
 STEP.F          1              : STEP
 NULL.           -999.25        : NULL VALUE
 WELL.           TestWell       : WELL
~CURVE INFORMATION
 DEPT.F                         : DEPTH
 GR  .GAPI                      : GAMMA RAY
~A
100.0 50.2
101.0 -999.25
`

// FullLAS20 exercises every well record the parser models, a parameter
// section, an other section and comments.
const FullLAS20 = `# Synthetic LAS 2.0 file
~Version Information
 VERS.                          2.0 :   CWLS LOG ASCII STANDARD -VERSION 2.0
 WRAP.                          NO  :   ONE LINE PER DEPTH STEP
~Well Information Block
#MNEM.UNIT       Data Type    Information
#---------    -------------   ------------------------------
 STRT.M              1670.0000  : START DEPTH
 STOP.M              1669.7500  : STOP DEPTH
 STEP.M                -0.1250  : STEP
 NULL.                -999.25   : NULL VALUE
 COMP.       ANY OIL COMPANY INC.: COMPANY
 WELL.       AAAAA_2            : WELL
 FLD .       WILDCAT            : FIELD
 LOC .       12-34-12-34W5M     : LOCATION
 PROV.       ALBERTA            : PROVINCE
 SRVC.       ANY LOGGING COMPANY INC. : SERVICE COMPANY
 DATE.       13-DEC-86          : LOG DATE
 UWI .       100123401234W500   : UNIQUE WELL ID
 LAT .DEG    54.5               : LATITUDE
 LONG.DEG    -115.25            : LONGITUDE
 GDAT.       NAD83              : GEODETIC DATUM
~Curve Information Block
#MNEM.UNIT      API CODE      Curve Description
#---------    -------------   ------------------------------
 DEPT.M                       : 1  DEPTH
 DT  .US/M     60 520 32 00   : 2  SONIC TRANSIT TIME
 RHOB.K/M3     45 350 01 00   : 3  BULK DENSITY
 NPHI.V/V      42 890 00 00   : 4  NEUTRON POROSITY
~Parameter Information Block
#MNEM.UNIT        Value        Description
 BHT .DEGC      35.5000      : BOTTOM HOLE TEMPERATURE
 BS  .MM       200.0000      : BIT SIZE
~Other Information
 Note: The logging tools became stuck at 625 metres.
~A  DEPTH     DT       RHOB     NPHI
1670.000   123.450 2550.000    0.450
1669.875   123.450 2550.000    0.450
1669.750   123.450 2550.000    0.450
`

// LegacyLAS12 is a LAS 1.2 file whose free text sits after the colon.
const LegacyLAS12 = `~VERSION INFORMATION
 VERS.                  1.2:   CWLS LOG ASCII STANDARD -VERSION 1.2
 WRAP.                  NO:   ONE LINE PER DEPTH STEP
~WELL INFORMATION BLOCK
 STRT.FT     635.0000:
 STOP.FT     636.0000:
 STEP.FT       0.5000:
 NULL.       -999.2500:
 COMP.             COMPANY:   ANY OIL COMPANY LTD.
 WELL.                WELL:   ANY ET AL OIL WELL #12
 FLD .               FIELD:   EDAM
 STAT.               STATE:   TEXAS
 API .                 API:   42-501-20130
 DATE.            LOG DATE:   25-DEC-1988
~CURVE INFORMATION
 DEPT.FT                  :   1  DEPTH
 ILD .OHMM                :   2  DEEP RESISTIVITY
 ILD .OHMM                :   3  DEEP RESISTIVITY REPEAT
~A
635.0000   105.6000   105.1000
635.5000   105.6000   105.4000
636.0000   105.6000   105.7000
`

// WrappedLAS carries records that span a varying number of physical lines.
const WrappedLAS = `~Version Information
 VERS.                 2.0:   CWLS log ASCII Standard -VERSION 2.0
 WRAP.                 YES:   Multiple lines per depth step
~Well Information
 STRT.M            910.0000:
 STOP.M            909.5000:
 STEP.M             -0.5000:
 NULL.             -999.2500:
 WELL.              SOMEWELL:  WELL
~Curve Information
 DEPT.M                   :  1  DEPTH
 DT  .US/M                :  2  SONIC TRANSIT TIME
 RHOB.K/M3                :  3  BULK DENSITY
 NPHI.V/V                 :  4  NEUTRON POROSITY
 SFLU.OHMM                :  5  SHALLOW RESISTIVITY
~A
910.000
-999.2500 2692.7075 0.3140 19.4086
909.500
-999.2500 2712.6460
0.2886 23.3987
`

// CommaLAS is comma delimited with one empty field.
const CommaLAS = `~V
 VERS.   3.0 : CWLS LOG ASCII STANDARD - VERSION 3.0
 WRAP.   NO  : ONE LINE PER DEPTH STEP
 DLM .   COMMA : DELIMITING CHARACTER
~W
 STRT.M  10.0 : START
 STOP.M  12.0 : STOP
 STEP.M  1.0  : STEP
 NULL.   -999.25 : NULL
~C
 DEPT.M   : DEPTH
 GR  .GAPI : GAMMA RAY
 RES .OHMM : RESISTIVITY
~A
10.0,,30.0
11.0,21.5,31.5
12.0,22.0,
`

// Lines splits a fixture into lines without terminators.
func Lines(fixture string) []string {
	return strings.Split(strings.TrimSuffix(fixture, "\n"), "\n")
}

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// NewLASRequest builds a request whose body is a LAS file.
func NewLASRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "text/plain")
	return req
}
