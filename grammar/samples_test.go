package grammar

const sampleCue = `
CUE cross_back_01 START
    # input BPM, BPM scale rate, lights
    IN BPM, RATE, LIGHT

    FUNC wave(x) = sin(x)
    FUNC wave2(x) = 1-sin(x)

    # a bar has 4 intervals
    INTERVAL 4

    DIMMER{
        INTERVAL[1-4]{
            LIGHT.L DIMMER func wave from 0 to PI
            LIGHT.R DIMMER func wave2 from 0 to PI
        }
    }

    COLOR{
        INTERVAL[1]{
            LIGHT.L COLOR value "red_a"

            LIGHT.R COLOR value "blue_a"
        }
        INTERVAL[2]{
            LIGHT.ALL COLOR value "green_a"
        }
    }

    STROBE{
        INTERVAL[3]{
            LIGHT.R STROBE value 255
        }
    }

    # bypass keeps the previous values
    OTHERS{bypass}

CUE END
`

const sampleSetting = `
LIBS [
    "color_lib_250601",
    "fixture_lib_250601"
]

FIXTURE PAR_4W54 8 ["A","B","C","D","E","F","G","H"]
FIXTURE FOG_XL 2 ["FOG_L","FOG_R"]

PATCH {
    {
        "UNIVERSE": "A",
        "PATCHES": {
            "A": 1,
            "B": 9,
            "C": 17,
        }
    },
    {
        "UNIVERSE": "B",
        "PATCHES": {
            "FOG_L": 250,
            "FOG_R": 251
        }
    }
}
GROUP FOG ["FOG_L","FOG_R"]
GROUP <LR> FACE ["A","B"]
GROUP <OE,LR> BACK ["C","D","E","F","G","H"]
`

const sampleShow = `
SETTING "setting"
PLAYBACK "playback_lib_250601"

SHOW 1 START
    CUE {
        IN BPM, RATE, LIGHT

        FUNC wave1(x) = sin(x)

        INTERVAL 4

        DIMMER{
            INTERVAL[1-4]{
                LIGHT.L DIMMER func wave1 from 0 to PI
                LIGHT.R DIMMER func wave1 from 0 to PI
            }
        }
    } CUE END

    WAIT 4 beats

    CUE cross_back_01(120, RATE=2, LIGHT=FACE.ALL) CUE END
SHOW END
`
